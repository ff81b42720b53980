// Package amountutils provides the amount parsing shared by the statement
// parsers. Statement amounts arrive as display strings ("1,23,456.78",
// "Rs. 2500.00", " 42 ") and must become decimals without float rounding.
package amountutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyMarkers = regexp.MustCompile(`(?i)(₹|rs\.?|inr)`)

// StandardizeAmount strips grouping separators, currency markers and
// whitespace so decimal.NewFromString can parse the remainder. Indian
// lakh/crore grouping ("1,23,456.78") reduces the same way as western
// grouping since commas are never decimal separators on these statements.
func StandardizeAmount(amountStr string) string {
	s := currencyMarkers.ReplaceAllString(amountStr, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.TrimSpace(s)
}

// ParseAmount parses an amount string strictly, returning an error when the
// cleaned string is not a valid decimal. Empty input parses to zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// CleanAmount parses an amount string leniently: blank or unparseable
// values become zero. Tabular statement cells are frequently empty on the
// side (debit or credit) the row does not use, and those must not abort
// the row.
func CleanAmount(amountStr string) decimal.Decimal {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
