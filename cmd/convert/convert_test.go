package convert

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/stmt-sorter/cmd/root"
	"fjacquet/stmt-sorter/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Date,Description,Debit,Credit,Balance
15-01-2024,NEFT SALARY JAN,,"2,500.00","10,000.00"
16-01-2024,ATM WDL CASH,400.00,,"9,600.00"
`

func setupConvert(t *testing.T) string {
	t.Helper()

	outputDir := t.TempDir()

	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Output.Directory = outputDir
	cfg.Output.RetentionMinutes = 60
	cfg.Output.SweepMinutes = 10
	cfg.CSV.Delimiter = ","
	root.Cfg = cfg

	input := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(input, []byte(sampleCSV), 0o644))

	root.SharedFlags.Input = input
	root.SharedFlags.Output = ""
	root.SharedFlags.Format = "xlsx"
	t.Cleanup(func() {
		root.SharedFlags.Input = ""
		root.SharedFlags.Output = ""
		root.SharedFlags.Format = "xlsx"
	})
	return outputDir
}

func TestConvertCommandMetadata(t *testing.T) {
	assert.Equal(t, "convert", Cmd.Use)
	assert.Contains(t, Cmd.Short, "summary workbook")
	assert.NotNil(t, Cmd.RunE)
}

func TestConvertRequiresInput(t *testing.T) {
	setupConvert(t)
	root.SharedFlags.Input = ""

	err := convertFunc(Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file is required")
}

func TestConvertRejectsUnknownFormat(t *testing.T) {
	setupConvert(t)
	root.SharedFlags.Format = "pdf"

	err := convertFunc(Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestConvertWritesWorkbookToOutputPath(t *testing.T) {
	setupConvert(t)
	output := filepath.Join(t.TempDir(), "summary.xlsx")
	root.SharedFlags.Output = output

	require.NoError(t, convertFunc(Cmd, nil))

	file, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, file.Close())
	}()
	assert.Contains(t, file.GetSheetList(), "Deposits")
}

func TestConvertWritesCSVExport(t *testing.T) {
	setupConvert(t)
	output := filepath.Join(t.TempDir(), "sorted.csv")
	root.SharedFlags.Output = output
	root.SharedFlags.Format = "csv"

	require.NoError(t, convertFunc(Cmd, nil))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Salary")
}

func TestConvertGeneratesNameWithoutOutputFlag(t *testing.T) {
	outputDir := setupConvert(t)

	require.NoError(t, convertFunc(Cmd, nil))

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "Bank_Summary_")
}
