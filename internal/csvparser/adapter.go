// Package csvparser parses bank statements exported as CSV files.
package csvparser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/stmt-sorter/internal/common"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
	"fjacquet/stmt-sorter/internal/parser"
	"fjacquet/stmt-sorter/internal/parsererror"
)

// utf8BOM is stripped before parsing; spreadsheet tools prepend it to CSV
// exports.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Adapter implements models.Parser for CSV statements.
type Adapter struct {
	parser.BaseParser
}

var _ models.Parser = (*Adapter)(nil)

// NewAdapter creates a CSV parser.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{BaseParser: parser.NewBaseParser(logger)}
}

// Parse reads a CSV statement and returns its transaction rows. Files with
// the canonical export header are read back through the export row type so
// their type and category columns survive a round trip; any other layout
// goes through header mapping.
func (a *Adapter) Parse(r io.Reader) ([]models.Transaction, error) {
	logger := a.GetLogger()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer CSV stream: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	csvReader := csv.NewReader(bytes.NewReader(data))
	csvReader.Comma = common.Delimiter
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "CSV",
			Msg:            err.Error(),
		}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var transactions []models.Transaction
	if common.IsCanonicalHeader(rows[0]) {
		records, err := common.ReadCSV[common.TransactionRecord](bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to read canonical CSV: %w", err)
		}
		transactions = make([]models.Transaction, len(records))
		for i, record := range records {
			transactions[i] = record.Transaction()
		}
	} else {
		transactions = common.MapRowsToTransactions(rows)
	}

	logger.Info("Parsed CSV statement",
		logging.Field{Key: logging.FieldParser, Value: "CSV"},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, nil
}
