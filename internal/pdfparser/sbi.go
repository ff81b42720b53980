package pdfparser

import (
	"regexp"
	"strings"

	"fjacquet/stmt-sorter/internal/amountutils"
	"fjacquet/stmt-sorter/internal/models"

	"github.com/shopspring/decimal"
)

// Line shapes on SBI statements. A transaction row starts with the post
// date, optionally followed by the value date, and its description can
// spill onto the next two lines.
var (
	txnLinePattern    = regexp.MustCompile(`^(\d{2}-\d{2}-\d{4})\s+(\d{2}-\d{2}-\d{4})?\s*(.*)`)
	datePrefixPattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}`)
	amountPattern     = regexp.MustCompile(`[\d,]+\.\d{2}`)
	amountToEnd       = regexp.MustCompile(`[\d,]+\.\d{2}.*`)
	multiWhitespace   = regexp.MustCompile(`\s+`)
)

// Description keywords that mark a statement line as a withdrawal.
var lineWithdrawalKeywords = []string{
	"WDL", "WITHDRAWAL", "TO INTEREST", "DIRECT DR", "DEBIT", "LEVY", "ATM",
}

// parseStatementText parses transaction rows out of statement text, from
// either the PDF text layer or OCR output.
func parseStatementText(text string) []models.Transaction {
	var transactions []models.Transaction
	lines := strings.Split(text, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if skipLine(line) {
			continue
		}

		m := txnLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		postDate := m[1]
		valueDate := m[2]
		if valueDate == "" {
			valueDate = postDate
		}
		rest := strings.TrimSpace(m[3])

		amounts := amountPattern.FindAllString(rest, -1)

		var descParts []string
		// The first line's description ends where its amount columns start.
		if desc := strings.TrimSpace(amountToEnd.ReplaceAllString(rest, "")); desc != "" {
			descParts = append(descParts, desc)
		}

		j := i + 1
		for j < len(lines) && j <= i+2 {
			next := strings.TrimSpace(lines[j])
			if next == "" || datePrefixPattern.MatchString(next) || strings.Contains(next, "Page no") {
				break
			}

			amounts = append(amounts, amountPattern.FindAllString(next, -1)...)

			nextDesc := strings.TrimSpace(amountPattern.ReplaceAllString(next, ""))
			if len(nextDesc) > 2 && !digitsOnly(nextDesc) {
				descParts = append(descParts, nextDesc)
			}
			j++
		}
		i = j - 1

		fullDesc := strings.ReplaceAll(strings.Join(descParts, " "), "|", "")
		fullDesc = strings.TrimSpace(multiWhitespace.ReplaceAllString(fullDesc, " "))

		if tx, ok := buildTransaction(postDate, valueDate, fullDesc, dedupe(amounts)); ok {
			transactions = append(transactions, tx)
		}
	}

	return transactions
}

// skipLine filters headers, page markers and the carried-over balance row.
func skipLine(line string) bool {
	return line == "" ||
		strings.Contains(line, "Page no") ||
		strings.Contains(line, "Post Date") ||
		strings.Contains(strings.ToUpper(line), "BROUGHT FORWARD")
}

// digitsOnly reports whether s is nothing but digits once spaces and commas
// are removed. Such continuation lines are column debris, not description
// text.
func digitsOnly(s string) bool {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// dedupe removes repeated amounts, keeping first-seen order. OCR can read
// the same printed figure twice when table columns overlap.
func dedupe(amounts []string) []string {
	seen := make(map[string]struct{}, len(amounts))
	var out []string
	for _, a := range amounts {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// buildTransaction assembles a row from its parts. With two or more
// amounts the first is the transaction amount and the last the running
// balance; a single amount is just the balance and carries no transaction.
func buildTransaction(postDate, valueDate, desc string, amounts []string) (models.Transaction, bool) {
	if desc == "" {
		return models.Transaction{}, false
	}

	var debit, credit decimal.Decimal
	var balance string

	switch {
	case len(amounts) >= 2:
		amount := amountutils.CleanAmount(amounts[0])
		balance = amounts[len(amounts)-1]
		if isLineWithdrawal(desc) {
			debit = amount
		} else {
			credit = amount
		}
	case len(amounts) == 1:
		balance = amounts[0]
	}

	if !debit.IsPositive() && !credit.IsPositive() {
		return models.Transaction{}, false
	}

	return models.Transaction{
		Date:        postDate,
		ValueDate:   valueDate,
		Description: desc,
		Debit:       debit,
		Credit:      credit,
		Balance:     balance,
	}, true
}

func isLineWithdrawal(desc string) bool {
	upper := strings.ToUpper(desc)
	for _, kw := range lineWithdrawalKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}
