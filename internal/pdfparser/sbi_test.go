package pdfparser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Text layer of a small statement, one extracted row per line. Covers the
// header block, a carried-forward balance, a missing value date, a
// two-line description, a balance-only row and duplicate OCR amounts.
const sbiStatementText = `STATE BANK OF INDIA
Account Statement for the period 01-01-2024 to 31-01-2024
Mr. JOHN KUMAR SHARMA
#12 Gandhi Road
Account No: 12345678901

Post Date Value Date Description Debit Credit Balance
BROUGHT FORWARD 1,20,000.00
15-01-2024 15-01-2024 NEFT SALARY JAN 2,500.00 1,22,500.00
16-01-2024 ATM WDL TXN 500.00 1,22,000.00
18-01-2024 18-01-2024 DEP TFR HRMS Mobile
PF No 77001 HRMS 1,000.00 1,23,000.00
20-01-2024 20-01-2024 TO INTEREST 150.00 1,22,850.00
22-01-2024 22-01-2024 CHEQUE DEPOSIT PENDING
1,22,850.00
Page no 2
25-01-2024 25-01-2024 DIRECT DR | ECS | 2,000.00 2,000.00 1,20,850.00

28-01-2024 28-01-2024 UPI/PAY/440012 GROCERY
77 001
300.00 1,20,550.00
`

func amt(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func TestParseStatementText(t *testing.T) {
	transactions := parseStatementText(sbiStatementText)
	require.Len(t, transactions, 6)

	salary := transactions[0]
	assert.Equal(t, "15-01-2024", salary.Date)
	assert.Equal(t, "15-01-2024", salary.ValueDate)
	assert.Equal(t, "NEFT SALARY JAN", salary.Description)
	assert.True(t, amt(t, "2500.00").Equal(salary.Credit))
	assert.True(t, salary.Debit.IsZero())
	assert.Equal(t, "1,22,500.00", salary.Balance)

	// A missing value date falls back to the post date.
	atm := transactions[1]
	assert.Equal(t, "16-01-2024", atm.Date)
	assert.Equal(t, "16-01-2024", atm.ValueDate)
	assert.Equal(t, "ATM WDL TXN", atm.Description)
	assert.True(t, amt(t, "500.00").Equal(atm.Debit))

	// Two-line description row.
	hrms := transactions[2]
	assert.Equal(t, "DEP TFR HRMS Mobile PF No 77001 HRMS", hrms.Description)
	assert.True(t, amt(t, "1000.00").Equal(hrms.Credit))
	assert.Equal(t, "1,23,000.00", hrms.Balance)

	interest := transactions[3]
	assert.Equal(t, "TO INTEREST", interest.Description)
	assert.True(t, amt(t, "150.00").Equal(interest.Debit))

	// Duplicate amounts collapse and the pipes are stripped.
	directDebit := transactions[4]
	assert.Equal(t, "DIRECT DR ECS", directDebit.Description)
	assert.True(t, amt(t, "2000.00").Equal(directDebit.Debit))
	assert.Equal(t, "1,20,850.00", directDebit.Balance)

	// No withdrawal keyword, so the amount lands on the credit side even
	// for a payment. The pipeline's category pass still labels it.
	upi := transactions[5]
	assert.Equal(t, "UPI/PAY/440012 GROCERY", upi.Description)
	assert.True(t, amt(t, "300.00").Equal(upi.Credit))

	// The balance-only row carries no transaction amount.
	for _, tx := range transactions {
		assert.NotEqual(t, "CHEQUE DEPOSIT PENDING", tx.Description)
	}
}

func TestParseStatementTextNoRows(t *testing.T) {
	assert.Empty(t, parseStatementText(""))
	assert.Empty(t, parseStatementText("STATE BANK OF INDIA\nPost Date Value Date\n"))
}

func TestDigitsOnly(t *testing.T) {
	assert.True(t, digitsOnly("77 001"))
	assert.True(t, digitsOnly("1,22,000"))
	assert.False(t, digitsOnly("PF No 77001"))
	assert.False(t, digitsOnly(" , "))
}

func TestDedupe(t *testing.T) {
	in := []string{"2,000.00", "2,000.00", "1,20,850.00", "2,000.00"}
	assert.Equal(t, []string{"2,000.00", "1,20,850.00"}, dedupe(in))
	assert.Empty(t, dedupe(nil))
}

func TestIsLineWithdrawal(t *testing.T) {
	tests := []struct {
		desc     string
		expected bool
	}{
		{"ATM WDL TXN", true},
		{"wdl tfr to branch", true},
		{"TO INTEREST", true},
		{"OFFICER LEVY COLLECTION", true},
		{"DIRECT DR ECS", true},
		{"NEFT SALARY JAN", false},
		{"DEP TFR HRMS Mobile", false},
		{"UPI/PAY/440012 GROCERY", false},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.expected, isLineWithdrawal(tt.desc))
		})
	}
}

func TestBuildTransaction(t *testing.T) {
	t.Run("single amount is balance only", func(t *testing.T) {
		_, ok := buildTransaction("15-01-2024", "15-01-2024", "CHEQUE PENDING", []string{"1,22,850.00"})
		assert.False(t, ok)
	})

	t.Run("empty description dropped", func(t *testing.T) {
		_, ok := buildTransaction("15-01-2024", "15-01-2024", "", []string{"500.00", "1,000.00"})
		assert.False(t, ok)
	})

	t.Run("withdrawal keyword picks the debit side", func(t *testing.T) {
		tx, ok := buildTransaction("15-01-2024", "15-01-2024", "CASH WDL", []string{"500.00", "1,000.00"})
		require.True(t, ok)
		assert.True(t, amt(t, "500.00").Equal(tx.Debit))
		assert.True(t, tx.Credit.IsZero())
		assert.Equal(t, "1,000.00", tx.Balance)
	})
}
