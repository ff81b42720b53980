package models

// Transaction types
const (
	TypeDeposit    = "Deposit"
	TypeWithdrawal = "Withdrawal"
)

// Fallback categories for transactions no rule matches
const (
	CategoryOtherDeposit    = "Other Deposit"
	CategoryOtherWithdrawal = "Other Withdrawal"
)

// DefaultBankName is used when the statement does not name the bank.
const DefaultBankName = "SBI"

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionOutputFile = 0644
)
