package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryGroup is the set of transactions sharing one category, with
// their summed amount. The workbook writer renders one column group per
// CategoryGroup.
type CategoryGroup struct {
	Name         string
	Transactions []Transaction
	Total        decimal.Decimal
}

// FilterByType returns the transactions whose Type matches txType.
func FilterByType(transactions []Transaction, txType string) []Transaction {
	var out []Transaction
	for _, tx := range transactions {
		if tx.Type == txType {
			out = append(out, tx)
		}
	}
	return out
}

// GroupByCategory groups transactions by category, ordered by category
// name, with per-group totals over the effective amounts.
func GroupByCategory(transactions []Transaction) []CategoryGroup {
	byName := make(map[string][]Transaction)
	for _, tx := range transactions {
		byName[tx.Category] = append(byName[tx.Category], tx)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]CategoryGroup, 0, len(names))
	for _, name := range names {
		txs := byName[name]
		total := decimal.Zero
		for _, tx := range txs {
			total = total.Add(tx.Amount())
		}
		groups = append(groups, CategoryGroup{
			Name:         name,
			Transactions: txs,
			Total:        total,
		})
	}
	return groups
}

// SumAmounts totals the effective amounts of the given transactions.
func SumAmounts(transactions []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount())
	}
	return total
}
