// Package xlsparser parses bank statements in the legacy XLS binary format.
package xlsparser

import (
	"fmt"
	"io"
	"os"

	"fjacquet/stmt-sorter/internal/common"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
	"fjacquet/stmt-sorter/internal/parser"
	"fjacquet/stmt-sorter/internal/parsererror"

	"github.com/shakinm/xlsReader/xls"
)

// Adapter implements models.Parser for XLS statements.
type Adapter struct {
	parser.BaseParser
}

var _ models.Parser = (*Adapter)(nil)

// NewAdapter creates an XLS parser.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{BaseParser: parser.NewBaseParser(logger)}
}

// Parse reads a legacy XLS workbook and returns its transaction rows.
// The stream is buffered to a temporary file because the XLS reader
// opens workbooks by path.
func (a *Adapter) Parse(r io.Reader) ([]models.Transaction, error) {
	logger := a.GetLogger()

	tmpFile, err := os.CreateTemp("", "*.xls")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			logger.WithError(err).Warn("Failed to remove temporary file",
				logging.Field{Key: logging.FieldFile, Value: tmpPath})
		}
	}()

	if _, err := io.Copy(tmpFile, r); err != nil {
		_ = tmpFile.Close()
		return nil, fmt.Errorf("failed to buffer XLS stream: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}

	workbook, err := xls.OpenFile(tmpPath)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "XLS",
			Msg:            err.Error(),
		}
	}

	rows, sheetIndex := a.statementRows(&workbook)
	if sheetIndex < 0 {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "XLS",
			Msg:            "workbook has no sheets",
		}
	}

	transactions := common.MapRowsToTransactions(rows)
	logger.Info("Parsed XLS statement",
		logging.Field{Key: logging.FieldParser, Value: "XLS"},
		logging.Field{Key: logging.FieldSheet, Value: sheetIndex},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, nil
}

// statementRows returns the rows of the first sheet whose header row looks
// like a statement table, falling back to the first sheet.
func (a *Adapter) statementRows(workbook *xls.Workbook) ([][]string, int) {
	var fallback [][]string
	fallbackIndex := -1

	for i := 0; i < workbook.GetNumberSheets(); i++ {
		s, err := workbook.GetSheet(i)
		if err != nil {
			a.GetLogger().WithError(err).Warn("Failed to read sheet",
				logging.Field{Key: logging.FieldSheet, Value: i})
			continue
		}
		if s == nil {
			continue
		}

		var rows [][]string
		for _, xlsRow := range s.GetRows() {
			var cells []string
			for _, col := range xlsRow.GetCols() {
				cells = append(cells, col.GetString())
			}
			rows = append(rows, cells)
		}

		if fallbackIndex == -1 {
			fallback, fallbackIndex = rows, i
		}
		if len(rows) > 0 && common.HasStatementColumns(rows[0]) {
			return rows, i
		}
	}

	return fallback, fallbackIndex
}
