// Package workbook renders processed transactions into the styled
// three-sheet summary workbook (Deposits, withdrawals, summary) and the
// flat CSV export.
package workbook

import (
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/stmt-sorter/internal/common"
	"fjacquet/stmt-sorter/internal/fileutils"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names. The lowercase forms are kept as the reports have always
// been produced, so downstream spreadsheets referencing them keep working.
const (
	SheetDeposits    = "Deposits"
	SheetWithdrawals = "withdrawals"
	SheetSummary     = "summary"
)

const amountNumberFormat = "#,##0.00"

// Writer produces summary workbooks and CSV exports in the output
// directory.
type Writer struct {
	outputDir string
	logger    logging.Logger
}

// NewWriter creates a Writer targeting the given output directory.
func NewWriter(outputDir string, logger logging.Logger) *Writer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{outputDir: outputDir, logger: logger}
}

// OutputDir returns the directory generated files are written to.
func (w *Writer) OutputDir() string {
	return w.outputDir
}

// GenerateFilename returns a fresh report file name. The timestamp keeps
// names sortable and the id suffix keeps uploads landing in the same
// second from colliding.
func GenerateFilename(extension string) string {
	return fmt.Sprintf("Bank_Summary_%s_%s.%s",
		time.Now().Format("20060102_150405"), uuid.NewString()[:8], extension)
}

// WriteWorkbook renders the transactions into a new summary workbook in
// the output directory and returns its file name.
func (w *Writer) WriteWorkbook(transactions []models.Transaction, account models.Account) (string, error) {
	filename := GenerateFilename("xlsx")
	if err := w.WriteWorkbookFile(filepath.Join(w.outputDir, filename), transactions, account); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteWorkbookFile renders the transactions into a summary workbook at
// the given path.
func (w *Writer) WriteWorkbookFile(path string, transactions []models.Transaction, account models.Account) error {
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := build(transactions, account)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("error saving workbook: %w", err)
	}

	w.logger.Info("Wrote summary workbook",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return nil
}

// WriteCSV writes the transactions as a flat categorized CSV export in the
// output directory and returns its file name.
func (w *Writer) WriteCSV(transactions []models.Transaction) (string, error) {
	filename := GenerateFilename("csv")
	if err := w.WriteCSVFile(filepath.Join(w.outputDir, filename), transactions); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteCSVFile writes the transactions as a categorized CSV file at the
// given path, in the canonical export layout.
func (w *Writer) WriteCSVFile(path string, transactions []models.Transaction) error {
	return common.WriteTransactionsToCSV(transactions, path)
}

// styles holds the style ids registered on one workbook.
type styles struct {
	bold       int
	header     int
	amount     int
	boldAmount int
}

func newStyles(file *excelize.File) (styles, error) {
	var st styles
	var err error

	if st.bold, err = file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	}); err != nil {
		return st, fmt.Errorf("error creating bold style: %w", err)
	}

	if st.header, err = file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	}); err != nil {
		return st, fmt.Errorf("error creating header style: %w", err)
	}

	numFmt := amountNumberFormat
	if st.amount, err = file.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
	}); err != nil {
		return st, fmt.Errorf("error creating amount style: %w", err)
	}

	if st.boldAmount, err = file.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &numFmt,
	}); err != nil {
		return st, fmt.Errorf("error creating total style: %w", err)
	}

	return st, nil
}

// build renders a complete workbook in memory.
func build(transactions []models.Transaction, account models.Account) (*excelize.File, error) {
	file := excelize.NewFile()

	if err := file.SetSheetName("Sheet1", SheetDeposits); err != nil {
		return nil, fmt.Errorf("error renaming sheet: %w", err)
	}
	for _, name := range []string{SheetWithdrawals, SheetSummary} {
		if _, err := file.NewSheet(name); err != nil {
			return nil, fmt.Errorf("error creating sheet %s: %w", name, err)
		}
	}

	st, err := newStyles(file)
	if err != nil {
		return nil, err
	}

	deposits := models.GroupByCategory(models.FilterByType(transactions, models.TypeDeposit))
	withdrawals := models.GroupByCategory(models.FilterByType(transactions, models.TypeWithdrawal))

	if err := writeCategorySheet(file, SheetDeposits, deposits, account, st); err != nil {
		return nil, err
	}
	if err := writeCategorySheet(file, SheetWithdrawals, withdrawals, account, st); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(file, deposits, withdrawals, account, st); err != nil {
		return nil, err
	}

	return file, nil
}

// sheetWriter wraps cell writes on one sheet, capturing the first error so
// the rendering code does not have to check every call.
type sheetWriter struct {
	file  *excelize.File
	sheet string
	err   error
}

func (s *sheetWriter) set(col, row int, value interface{}) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.file.SetCellValue(s.sheet, cell, value)
}

func (s *sheetWriter) style(col, row, styleID int) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.file.SetCellStyle(s.sheet, cell, cell, styleID)
}

func (s *sheetWriter) width(col int, width float64) {
	if s.err != nil {
		return
	}
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.file.SetColWidth(s.sheet, name, name, width)
}

// writeAccountBlock writes the Name/Bank/Account NO block at the top left
// of a sheet.
func writeAccountBlock(sw *sheetWriter, account models.Account) {
	sw.set(1, 1, "Name")
	sw.set(2, 1, account.HolderName)
	sw.set(1, 2, "Bank")
	sw.set(2, 2, account.BankName)
	sw.set(1, 3, "Account NO")
	sw.set(2, 3, account.Number)
}

// writeCategorySheet lays out one column group per category: the category
// title, a Date/Amount header row, the transaction rows and a total row.
// Groups sit three columns apart starting at column B.
func writeCategorySheet(file *excelize.File, sheet string, groups []models.CategoryGroup, account models.Account, st styles) error {
	sw := &sheetWriter{file: file, sheet: sheet}
	writeAccountBlock(sw, account)

	col := 2
	for _, group := range groups {
		sw.set(col, 4, group.Name)
		sw.style(col, 4, st.bold)

		sw.set(col, 5, "Date")
		sw.style(col, 5, st.header)
		sw.set(col+1, 5, "Amount")
		sw.style(col+1, 5, st.header)

		row := 6
		for _, tx := range group.Transactions {
			amount, _ := tx.Amount().Float64()
			sw.set(col, row, tx.Date)
			sw.set(col+1, row, amount)
			sw.style(col+1, row, st.amount)
			row++
		}

		total, _ := group.Total.Float64()
		sw.set(col, row, "Total")
		sw.style(col, row, st.bold)
		sw.set(col+1, row, total)
		sw.style(col+1, row, st.boldAmount)

		col += 3
	}

	for c := 1; c <= col; c++ {
		sw.width(c, 15)
	}

	if sw.err != nil {
		return fmt.Errorf("error writing sheet %s: %w", sheet, sw.err)
	}
	return nil
}

// writeSummarySheet lists one row per category with its total in the
// Deposits or Withdrwals column, after an Opening Balance placeholder row,
// and closes with a bold grand total row.
func writeSummarySheet(file *excelize.File, deposits, withdrawals []models.CategoryGroup, account models.Account, st styles) error {
	sw := &sheetWriter{file: file, sheet: SheetSummary}
	writeAccountBlock(sw, account)

	headers := []string{"SL No", "Particulars", "Deposits", "Withdrwals"}
	for i, header := range headers {
		sw.set(4+i, 4, header)
		sw.style(4+i, 4, st.header)
	}

	row := 5
	slNo := 1

	sw.set(4, row, slNo)
	sw.set(5, row, "Opening Balance")
	row++
	slNo++

	depositTotal := decimal.Zero
	for _, group := range deposits {
		total, _ := group.Total.Float64()
		depositTotal = depositTotal.Add(group.Total)
		sw.set(4, row, slNo)
		sw.set(5, row, group.Name)
		sw.set(6, row, total)
		sw.style(6, row, st.amount)
		row++
		slNo++
	}

	withdrawalTotal := decimal.Zero
	for _, group := range withdrawals {
		total, _ := group.Total.Float64()
		withdrawalTotal = withdrawalTotal.Add(group.Total)
		sw.set(4, row, slNo)
		sw.set(5, row, group.Name)
		sw.set(7, row, total)
		sw.style(7, row, st.amount)
		row++
		slNo++
	}

	row++
	grandDeposits, _ := depositTotal.Float64()
	grandWithdrawals, _ := withdrawalTotal.Float64()
	sw.set(5, row, "Total")
	sw.style(5, row, st.bold)
	sw.set(6, row, grandDeposits)
	sw.style(6, row, st.boldAmount)
	sw.set(7, row, grandWithdrawals)
	sw.style(7, row, st.boldAmount)

	sw.width(4, 8)
	sw.width(5, 35)
	sw.width(6, 15)
	sw.width(7, 15)

	if sw.err != nil {
		return fmt.Errorf("error writing sheet %s: %w", SheetSummary, sw.err)
	}
	return nil
}
