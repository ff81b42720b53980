package csvparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/stmt-sorter/internal/common"
	"fjacquet/stmt-sorter/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func TestAdapterParseBankLayout(t *testing.T) {
	content := `Txn Date,Particulars,Withdrawal,Deposit,Balance
15-01-2024,NEFT SALARY JAN,,"2,500.00","1,25,300.50"
16-01-2024,ATM WDL CASH,400.00,,"1,24,900.50"
`

	adapter := NewAdapter(nil)
	transactions, err := adapter.Parse(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "15-01-2024", transactions[0].Date)
	assert.Equal(t, "NEFT SALARY JAN", transactions[0].Description)
	assert.True(t, transactions[0].Credit.Equal(amt(t, "2500")))
	assert.Equal(t, "1,25,300.50", transactions[0].Balance)
	assert.Empty(t, transactions[0].Category)

	assert.Equal(t, "ATM WDL CASH", transactions[1].Description)
	assert.True(t, transactions[1].Debit.Equal(amt(t, "400")))
}

func TestAdapterParseCanonicalRoundTrip(t *testing.T) {
	exported := []models.Transaction{
		{
			Date:        "15/01/2024",
			ValueDate:   "15/01/2024",
			Description: "NEFT SALARY JAN",
			Reference:   "CHQ001",
			Credit:      amt(t, "2500"),
			Balance:     "1,25,300.50",
			Type:        models.TypeDeposit,
			Category:    "Salary",
		},
		{
			Date:        "16-01-2024",
			ValueDate:   "16-01-2024",
			Description: "ATM WDL CASH",
			Debit:       amt(t, "400"),
			Balance:     "1,24,900.50",
			Type:        models.TypeWithdrawal,
			Category:    "Cash Withdrawal",
		},
	}

	csvFile := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, common.WriteTransactionsToCSV(exported, csvFile))

	file, err := os.Open(csvFile)
	require.NoError(t, err)
	defer func() { require.NoError(t, file.Close()) }()

	adapter := NewAdapter(nil)
	transactions, err := adapter.Parse(file)
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "15-01-2024", transactions[0].Date)
	assert.Equal(t, "CHQ001", transactions[0].Reference)
	assert.True(t, transactions[0].Credit.Equal(amt(t, "2500")))
	assert.Equal(t, models.TypeDeposit, transactions[0].Type)
	assert.Equal(t, "Salary", transactions[0].Category)
	assert.Equal(t, "1,25,300.50", transactions[0].Balance)

	assert.True(t, transactions[1].Debit.Equal(amt(t, "400")))
	assert.Equal(t, "Cash Withdrawal", transactions[1].Category)
}

func TestAdapterParseByteOrderMark(t *testing.T) {
	content := "\xEF\xBB\xBF" + `Date,Value Date,Description,Reference,Debit,Credit,Balance,Type,Category
15-01-2024,15-01-2024,NEFT SALARY JAN,,0.00,2500.00,,Deposit,Salary
`

	adapter := NewAdapter(nil)
	transactions, err := adapter.Parse(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	assert.Equal(t, "Salary", transactions[0].Category)
	assert.True(t, transactions[0].Credit.Equal(amt(t, "2500")))
}

func TestAdapterParseRaggedRows(t *testing.T) {
	content := `Date,Description,Debit,Credit,Balance
15-01-2024,SHORT ROW,100.00
16-01-2024,FULL ROW,,50.00,900.00
`

	adapter := NewAdapter(nil)
	transactions, err := adapter.Parse(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.True(t, transactions[0].Debit.Equal(amt(t, "100")))
	assert.Empty(t, transactions[0].Balance)
	assert.True(t, transactions[1].Credit.Equal(amt(t, "50")))
	assert.Equal(t, "900.00", transactions[1].Balance)
}

func TestAdapterParseSemicolonDelimiter(t *testing.T) {
	common.SetDelimiter(';')
	defer common.SetDelimiter(',')

	content := `Date;Description;Debit;Credit;Balance
15-01-2024;POS PURCHASE;250.00;;1,200.00
`

	adapter := NewAdapter(nil)
	transactions, err := adapter.Parse(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	assert.Equal(t, "POS PURCHASE", transactions[0].Description)
	assert.True(t, transactions[0].Debit.Equal(amt(t, "250")))
	assert.Equal(t, "1,200.00", transactions[0].Balance)
}

func TestAdapterParseEmptyInput(t *testing.T) {
	adapter := NewAdapter(nil)
	transactions, err := adapter.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestNewAdapterDefaults(t *testing.T) {
	adapter := NewAdapter(nil)
	assert.NotNil(t, adapter.GetLogger())
}
