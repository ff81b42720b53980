package common

import (
	"strings"

	"fjacquet/stmt-sorter/internal/amountutils"
	"fjacquet/stmt-sorter/internal/models"
)

// Canonical column names produced by NormalizeHeader. Spreadsheet and CSV
// statements from different banks label the same columns differently, so
// every tabular parser maps its headers through this one table.
const (
	ColumnDate        = "Date"
	ColumnPostDate    = "Post_Date"
	ColumnValueDate   = "Value_Date"
	ColumnDescription = "Description"
	ColumnDebit       = "Debit"
	ColumnCredit      = "Credit"
	ColumnBalance     = "Balance"
	ColumnReference   = "Reference"
	ColumnAmount      = "Amount"
)

// Header keywords that mark a worksheet as holding the transaction table.
var statementColumnKeywords = []string{"date", "debit", "credit", "balance"}

// NormalizeHeader maps a raw column header to its canonical name. Headers
// with no known mapping are returned trimmed but otherwise unchanged.
func NormalizeHeader(name string) string {
	col := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.Contains(col, "post") && strings.Contains(col, "date"):
		return ColumnPostDate
	case strings.Contains(col, "value") && strings.Contains(col, "date"):
		return ColumnValueDate
	case col == "date" || col == "txn date" || col == "transaction date":
		return ColumnDate
	case col == "description" || col == "narration" || col == "particulars" || col == "remarks":
		return ColumnDescription
	case col == "debit" || col == "debit amount" || col == "withdrawal" || col == "dr":
		return ColumnDebit
	case col == "credit" || col == "credit amount" || col == "deposit" || col == "cr":
		return ColumnCredit
	case col == "balance" || col == "closing balance" || col == "running balance":
		return ColumnBalance
	case strings.Contains(col, "cheque") || strings.Contains(col, "ref"):
		return ColumnReference
	case col == "amount":
		return ColumnAmount
	default:
		return strings.TrimSpace(name)
	}
}

// HasStatementColumns reports whether any header looks like a transaction
// table column. Multi-sheet workbooks use this to pick the sheet that holds
// the statement rows.
func HasStatementColumns(headers []string) bool {
	for _, h := range headers {
		col := strings.ToLower(strings.TrimSpace(h))
		for _, kw := range statementColumnKeywords {
			if strings.Contains(col, kw) {
				return true
			}
		}
	}
	return false
}

// MapRowsToTransactions converts a raw table, first row headers, into
// transactions. Rows with neither a description nor a date are dropped.
func MapRowsToTransactions(rows [][]string) []models.Transaction {
	if len(rows) < 2 {
		return nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = NormalizeHeader(h)
	}

	transactions := make([]models.Transaction, 0, len(rows)-1)
	for _, row := range rows[1:] {
		tx, ok := mapRow(headers, row)
		if !ok {
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions
}

func mapRow(headers, row []string) (models.Transaction, bool) {
	var tx models.Transaction
	var date, postDate, amountCell string

	for i, header := range headers {
		if i >= len(row) {
			break
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}
		switch header {
		case ColumnDate:
			date = value
		case ColumnPostDate:
			postDate = value
		case ColumnValueDate:
			tx.ValueDate = value
		case ColumnDescription:
			tx.Description = value
		case ColumnDebit:
			tx.Debit = amountutils.CleanAmount(value)
		case ColumnCredit:
			tx.Credit = amountutils.CleanAmount(value)
		case ColumnBalance:
			tx.Balance = value
		case ColumnReference:
			tx.Reference = value
		case ColumnAmount:
			amountCell = value
		}
	}

	// The post date stands in for the transaction date when the sheet has
	// no plain date column, and the value date is the last resort.
	tx.Date = date
	if tx.Date == "" {
		tx.Date = postDate
	}
	if tx.Date == "" {
		tx.Date = tx.ValueDate
	}

	if tx.Description == "" && tx.Date == "" {
		return models.Transaction{}, false
	}

	// A single amount column is assigned to the side the description
	// keywords select.
	if amountCell != "" && tx.Debit.IsZero() && tx.Credit.IsZero() {
		amount := amountutils.CleanAmount(amountCell)
		if txType, _ := tx.DetermineType(); txType == models.TypeWithdrawal {
			tx.Debit = amount
		} else {
			tx.Credit = amount
		}
	}

	return tx, true
}
