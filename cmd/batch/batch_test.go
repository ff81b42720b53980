package batch

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/stmt-sorter/cmd/root"
	"fjacquet/stmt-sorter/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Date,Description,Debit,Credit,Balance
15-01-2024,NEFT SALARY JAN,,"2,500.00","10,000.00"
16-01-2024,ATM WDL CASH,400.00,,"9,600.00"
`

func setupBatch(t *testing.T) (string, string) {
	t.Helper()

	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "reports")

	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Output.Directory = outputDir
	cfg.Output.RetentionMinutes = 60
	cfg.Output.SweepMinutes = 10
	cfg.CSV.Delimiter = ","
	root.Cfg = cfg

	root.SharedFlags.Input = inputDir
	root.SharedFlags.Output = outputDir
	root.SharedFlags.Format = "xlsx"
	t.Cleanup(func() {
		root.SharedFlags.Input = ""
		root.SharedFlags.Output = ""
		root.SharedFlags.Format = "xlsx"
	})
	return inputDir, outputDir
}

func TestBatchCommandMetadata(t *testing.T) {
	assert.Equal(t, "batch", Cmd.Use)
	assert.Contains(t, Cmd.Short, "directory")
	assert.NotNil(t, Cmd.RunE)
}

func TestBatchRequiresDirectories(t *testing.T) {
	setupBatch(t)
	root.SharedFlags.Input = ""

	err := batchFunc(Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input and output directories are required")
}

func TestBatchConvertsDirectory(t *testing.T) {
	inputDir, outputDir := setupBatch(t)
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "january.csv"), []byte(sampleCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "readme.txt"), []byte("skip me"), 0o644))

	require.NoError(t, batchFunc(Cmd, nil))

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "january_summary.xlsx", entries[0].Name())
}
