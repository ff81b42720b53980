// Package models provides the data structures used throughout the application.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction represents a single statement row from any input format.
// Dates are kept as strings in the form they appear on the statement
// (normalized to DD-MM-YYYY during processing when parseable) and the
// running balance is kept as printed, including thousand separators.
type Transaction struct {
	Date        string
	ValueDate   string
	Description string
	Reference   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     string
	Type        string
	Category    string
}

// withdrawalKeywords are description fragments that mark a row as a
// withdrawal when neither a debit nor a credit amount is present.
var withdrawalKeywords = []string{"WDL", "WITHDRAWAL", "DEBIT", "DR", "TRANSFER OUT"}

// DetermineType resolves the transaction direction and its effective amount.
// A positive credit wins over a positive debit; when both are zero the
// direction is inferred from the description and the amount stays zero.
func (t *Transaction) DetermineType() (string, decimal.Decimal) {
	if t.Credit.IsPositive() {
		return TypeDeposit, t.Credit
	}
	if t.Debit.IsPositive() {
		return TypeWithdrawal, t.Debit
	}
	desc := strings.ToUpper(t.Description)
	for _, kw := range withdrawalKeywords {
		if strings.Contains(desc, kw) {
			return TypeWithdrawal, decimal.Zero
		}
	}
	return TypeDeposit, decimal.Zero
}

// Amount returns the effective transaction amount for its direction.
func (t *Transaction) Amount() decimal.Decimal {
	if t.Credit.IsPositive() {
		return t.Credit
	}
	return t.Debit
}

// IsDeposit returns true if the transaction has been typed as a deposit
func (t *Transaction) IsDeposit() bool {
	return t.Type == TypeDeposit
}

// IsWithdrawal returns true if the transaction has been typed as a withdrawal
func (t *Transaction) IsWithdrawal() bool {
	return t.Type == TypeWithdrawal
}
