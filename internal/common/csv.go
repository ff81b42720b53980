// Package common provides shared functionality across the statement parsers.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/stmt-sorter/internal/amountutils"
	"fjacquet/stmt-sorter/internal/dateutils"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"

	"github.com/gocarina/gocsv"
)

var log = logging.NewLogrusAdapter("info", "text")

// Delimiter is the column separator used for CSV input and output.
// Configurable through the csv.delimiter setting.
var Delimiter rune = ','

// SetDelimiter sets the delimiter used for CSV input and output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger replaces the package logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// TransactionRecord is the canonical CSV row for an exported transaction.
// Amounts are fixed to two decimal places and dates use DD-MM-YYYY, so an
// exported file can be read back through the CSV parser without loss.
type TransactionRecord struct {
	Date        string `csv:"Date"`
	ValueDate   string `csv:"Value Date"`
	Description string `csv:"Description"`
	Reference   string `csv:"Reference"`
	Debit       string `csv:"Debit"`
	Credit      string `csv:"Credit"`
	Balance     string `csv:"Balance"`
	Type        string `csv:"Type"`
	Category    string `csv:"Category"`
}

// NewTransactionRecord converts a transaction to its canonical CSV row.
func NewTransactionRecord(tx models.Transaction) TransactionRecord {
	return TransactionRecord{
		Date:        dateutils.NormalizeDate(tx.Date),
		ValueDate:   dateutils.NormalizeDate(tx.ValueDate),
		Description: tx.Description,
		Reference:   tx.Reference,
		Debit:       tx.Debit.StringFixed(2),
		Credit:      tx.Credit.StringFixed(2),
		Balance:     tx.Balance,
		Type:        tx.Type,
		Category:    tx.Category,
	}
}

// Transaction converts the CSV row back to a transaction.
func (r TransactionRecord) Transaction() models.Transaction {
	return models.Transaction{
		Date:        r.Date,
		ValueDate:   r.ValueDate,
		Description: r.Description,
		Reference:   r.Reference,
		Debit:       amountutils.CleanAmount(r.Debit),
		Credit:      amountutils.CleanAmount(r.Credit),
		Balance:     r.Balance,
		Type:        r.Type,
		Category:    r.Category,
	}
}

// CanonicalHeaders lists the TransactionRecord columns in export order.
var CanonicalHeaders = []string{
	"Date", "Value Date", "Description", "Reference",
	"Debit", "Credit", "Balance", "Type", "Category",
}

// IsCanonicalHeader reports whether a header row matches the canonical
// export layout, so a previously exported file can skip column mapping.
// The comparison is case sensitive because gocsv matches tags that way;
// files that differ only in case go through header mapping instead.
func IsCanonicalHeader(headers []string) bool {
	if len(headers) != len(CanonicalHeaders) {
		return false
	}
	for i, header := range headers {
		if strings.TrimSpace(header) != CanonicalHeaders[i] {
			return false
		}
	}
	return true
}

// ReadCSV reads CSV data from r into a slice of row structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSV[TCSVRow any](r io.Reader) ([]TCSVRow, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = Delimiter
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// WriteTransactionsToCSV writes transactions to a CSV file in the canonical
// format. All parsers and commands use this function so every export has the
// same column layout.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.Info("Writing transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- caller controls the output path
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	records := make([]TransactionRecord, len(transactions))
	for i, tx := range transactions {
		records[i] = NewTransactionRecord(tx)
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(&records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal transactions to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.Info("Successfully wrote transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return nil
}
