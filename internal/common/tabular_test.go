package common

import (
	"testing"

	"fjacquet/stmt-sorter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Txn Date", ColumnDate},
		{"TRANSACTION DATE", ColumnDate},
		{"Post Date", ColumnPostDate},
		{"Value Date", ColumnValueDate},
		{"Narration", ColumnDescription},
		{"Particulars", ColumnDescription},
		{"Remarks", ColumnDescription},
		{"Withdrawal", ColumnDebit},
		{"DR", ColumnDebit},
		{"Debit Amount", ColumnDebit},
		{"Deposit", ColumnCredit},
		{"CR", ColumnCredit},
		{"Closing Balance", ColumnBalance},
		{"Running Balance", ColumnBalance},
		{"Cheque No", ColumnReference},
		{"Ref No", ColumnReference},
		{"AMOUNT", ColumnAmount},
		{"Branch Code", "Branch Code"},
		{"  Branch Code  ", "Branch Code"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeHeader(tt.raw))
		})
	}
}

func TestHasStatementColumns(t *testing.T) {
	assert.True(t, HasStatementColumns([]string{"Txn Date", "Particulars", "Debit", "Credit"}))
	assert.True(t, HasStatementColumns([]string{"Closing Balance"}))
	assert.False(t, HasStatementColumns([]string{"Sl No", "Particulars", "Remarks"}))
	assert.False(t, HasStatementColumns(nil))
}

func TestMapRowsToTransactions(t *testing.T) {
	rows := [][]string{
		{"Txn Date", "Value Date", "Particulars", "Cheque No", "Debit", "Credit", "Balance"},
		{"15-01-2024", "15-01-2024", "NEFT SALARY JAN", "CHQ001", "", "2,500.00", "1,25,300.50"},
		{"16-01-2024", "", "ATM WDL REF 9921", "", "500.00", "", "1,24,800.50"},
		{"", "", "", "", "", "", ""},
		{"17-01-2024", "", "", "", "", "", "1,24,800.50"},
	}

	transactions := MapRowsToTransactions(rows)
	require.Len(t, transactions, 3)

	deposit := transactions[0]
	assert.Equal(t, "15-01-2024", deposit.Date)
	assert.Equal(t, "15-01-2024", deposit.ValueDate)
	assert.Equal(t, "NEFT SALARY JAN", deposit.Description)
	assert.Equal(t, "CHQ001", deposit.Reference)
	assert.True(t, dec(t, "2500.00").Equal(deposit.Credit))
	assert.True(t, deposit.Debit.IsZero())
	assert.Equal(t, "1,25,300.50", deposit.Balance)

	withdrawal := transactions[1]
	assert.True(t, dec(t, "500.00").Equal(withdrawal.Debit))
	assert.True(t, withdrawal.Credit.IsZero())

	// A date with no description still survives mapping. The pipeline
	// decides what to do with it.
	assert.Equal(t, "17-01-2024", transactions[2].Date)
	assert.Empty(t, transactions[2].Description)
}

func TestMapRowsToTransactionsPostDateFallback(t *testing.T) {
	rows := [][]string{
		{"Post Date", "Narration", "Withdrawal"},
		{"20-02-2024", "UPI/PAY/440012", "150.00"},
	}

	transactions := MapRowsToTransactions(rows)
	require.Len(t, transactions, 1)
	assert.Equal(t, "20-02-2024", transactions[0].Date)
	assert.True(t, dec(t, "150.00").Equal(transactions[0].Debit))
}

func TestMapRowsToTransactionsSingleAmountColumn(t *testing.T) {
	rows := [][]string{
		{"Date", "Description", "Amount"},
		{"01-03-2024", "ATM WDL CASH", "400.00"},
		{"02-03-2024", "SALARY FOR FEB", "30,000.00"},
	}

	transactions := MapRowsToTransactions(rows)
	require.Len(t, transactions, 2)

	assert.True(t, dec(t, "400.00").Equal(transactions[0].Debit))
	assert.True(t, transactions[0].Credit.IsZero())
	txType, amount := transactions[0].DetermineType()
	assert.Equal(t, models.TypeWithdrawal, txType)
	assert.True(t, dec(t, "400.00").Equal(amount))

	assert.True(t, dec(t, "30000.00").Equal(transactions[1].Credit))
	assert.True(t, transactions[1].Debit.IsZero())
}

func TestMapRowsToTransactionsEdgeCases(t *testing.T) {
	t.Run("header only", func(t *testing.T) {
		assert.Nil(t, MapRowsToTransactions([][]string{{"Date", "Description"}}))
	})

	t.Run("empty grid", func(t *testing.T) {
		assert.Nil(t, MapRowsToTransactions(nil))
	})

	t.Run("ragged rows", func(t *testing.T) {
		rows := [][]string{
			{"Date", "Description", "Debit", "Credit", "Balance"},
			{"05-03-2024", "UPI/GROCERY"},
		}

		transactions := MapRowsToTransactions(rows)
		require.Len(t, transactions, 1)
		assert.Equal(t, "UPI/GROCERY", transactions[0].Description)
		assert.True(t, transactions[0].Debit.IsZero())
	})
}

func TestMapRowsToTransactionsUnmappedColumnsIgnored(t *testing.T) {
	rows := [][]string{
		{"Sl No", "Date", "Description", "Credit", "Branch Code"},
		{"1", "10-03-2024", "NEFT REFUND", "99.00", "C042"},
	}

	transactions := MapRowsToTransactions(rows)
	require.Len(t, transactions, 1)
	assert.Equal(t, "NEFT REFUND", transactions[0].Description)
	assert.True(t, dec(t, "99.00").Equal(transactions[0].Credit))
	assert.Empty(t, transactions[0].Reference)
}
