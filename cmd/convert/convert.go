// Package convert handles one-shot statement conversion from the command
// line.
package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/stmt-sorter/cmd/root"
	"fjacquet/stmt-sorter/internal/container"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
	"fjacquet/stmt-sorter/internal/parsererror"
	"fjacquet/stmt-sorter/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the convert command.
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a statement file into a categorized summary workbook",
	Long: `Convert reads one bank statement file (PDF, XLS, XLSX or CSV), categorizes
its transactions and writes the summary workbook, or a flat CSV export when
--format csv is given.`,
	RunE: convertFunc,
}

func convertFunc(cmd *cobra.Command, args []string) error {
	input := root.SharedFlags.Input
	if input == "" {
		return fmt.Errorf("input file is required, use --input")
	}
	if err := validation.IsValidOutputFormat(root.SharedFlags.Format); err != nil {
		return err
	}

	c, err := container.NewContainer(root.Cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close container")
		}
	}()

	root.Log.Info("Converting statement",
		logging.Field{Key: logging.FieldInputFile, Value: input})

	p, err := c.ParserForFilename(input)
	if err != nil {
		return err
	}

	file, err := os.Open(input) // #nosec G304 -- user-supplied CLI path
	if err != nil {
		return fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close input file")
		}
	}()

	transactions, err := p.Parse(file)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		return parsererror.ErrNoTransactions
	}

	account := models.Account{BankName: models.DefaultBankName}
	if extractor, ok := p.(models.AccountExtractor); ok {
		account = extractor.AccountInfo()
	}

	result := c.Processor().Process(cmd.Context(), transactions)
	if len(result.Transactions) == 0 {
		return parsererror.ErrNoTransactions
	}

	outputPath, err := writeOutput(c, result.Transactions, account)
	if err != nil {
		return err
	}

	root.Log.Info("Conversion completed successfully",
		logging.Field{Key: logging.FieldOutputFile, Value: outputPath},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldDeposits, Value: result.Deposits},
		logging.Field{Key: logging.FieldWithdrawals, Value: result.Withdrawals})
	return nil
}

// writeOutput writes the report to the --output path, or with a generated
// name in the configured output directory when no path is given.
func writeOutput(c *container.Container, transactions []models.Transaction, account models.Account) (string, error) {
	writer := c.WorkbookWriter()
	outputPath := root.SharedFlags.Output
	asCSV := root.SharedFlags.Format == "csv"

	if outputPath == "" {
		var name string
		var err error
		if asCSV {
			name, err = writer.WriteCSV(transactions)
		} else {
			name, err = writer.WriteWorkbook(transactions, account)
		}
		if err != nil {
			return "", err
		}
		return filepath.Join(writer.OutputDir(), name), nil
	}

	if asCSV {
		return outputPath, writer.WriteCSVFile(outputPath, transactions)
	}
	return outputPath, writer.WriteWorkbookFile(outputPath, transactions, account)
}
