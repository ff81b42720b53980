// Package xlsxparser parses bank statements exported as XLSX workbooks.
// Many banks put the transaction table on a sheet other than the first
// one, so the parser scans every sheet for statement column headers.
package xlsxparser

import (
	"fmt"
	"io"

	"fjacquet/stmt-sorter/internal/common"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
	"fjacquet/stmt-sorter/internal/parser"
	"fjacquet/stmt-sorter/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

// Adapter implements models.Parser for XLSX statements.
type Adapter struct {
	parser.BaseParser
}

var _ models.Parser = (*Adapter)(nil)

// NewAdapter creates an XLSX parser.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{BaseParser: parser.NewBaseParser(logger)}
}

// Parse reads an XLSX workbook and returns its transaction rows.
func (a *Adapter) Parse(r io.Reader) ([]models.Transaction, error) {
	logger := a.GetLogger()

	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "XLSX",
			Msg:            err.Error(),
		}
	}
	defer func() {
		if err := workbook.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close XLSX workbook")
		}
	}()

	rows, sheetName, err := a.statementRows(workbook)
	if err != nil {
		return nil, err
	}

	transactions := common.MapRowsToTransactions(rows)
	logger.Info("Parsed XLSX statement",
		logging.Field{Key: logging.FieldParser, Value: "XLSX"},
		logging.Field{Key: logging.FieldSheet, Value: sheetName},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, nil
}

// statementRows returns the rows of the first sheet whose header row looks
// like a statement table. When no sheet matches, the first sheet is used.
func (a *Adapter) statementRows(workbook *excelize.File) ([][]string, string, error) {
	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", &parsererror.InvalidFormatError{
			ExpectedFormat: "XLSX",
			Msg:            "workbook has no sheets",
		}
	}

	for _, name := range sheets {
		rows, err := workbook.GetRows(name)
		if err != nil {
			a.GetLogger().WithError(err).Warn("Failed to read sheet",
				logging.Field{Key: logging.FieldSheet, Value: name})
			continue
		}
		if len(rows) > 0 && common.HasStatementColumns(rows[0]) {
			return rows, name, nil
		}
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, "", fmt.Errorf("failed to read sheet '%s': %w", sheets[0], err)
	}
	return rows, sheets[0], nil
}
