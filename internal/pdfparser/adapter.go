// Package pdfparser parses bank statement PDFs, including scanned ones.
// Text-based statements are read through the PDF text layer; scans fall
// back to OCR when an engine is configured.
package pdfparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/stmt-sorter/internal/common"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
	"fjacquet/stmt-sorter/internal/ocr"
	"fjacquet/stmt-sorter/internal/parser"
)

// Adapter implements models.Parser for PDF statements.
type Adapter struct {
	parser.BaseParser
	extractor TextExtractor
	ocrEngine ocr.Engine
	account   models.Account
}

// Compile-time interface checks.
var (
	_ models.Parser           = (*Adapter)(nil)
	_ models.AccountExtractor = (*Adapter)(nil)
)

// NewAdapter creates a PDF parser. A nil extractor gets the real text layer
// implementation; a nil OCR engine disables the scanned-statement fallback.
func NewAdapter(logger logging.Logger, extractor TextExtractor, ocrEngine ocr.Engine) *Adapter {
	base := parser.NewBaseParser(logger)
	if extractor == nil {
		extractor = NewRealTextExtractor(base.GetLogger())
	}
	return &Adapter{
		BaseParser: base,
		extractor:  extractor,
		ocrEngine:  ocrEngine,
	}
}

// Parse reads a whole PDF statement and returns its transaction rows.
// The stream is buffered to a temporary file because both the text layer
// reader and the OCR toolchain need random access.
func (a *Adapter) Parse(r io.Reader) ([]models.Transaction, error) {
	logger := a.GetLogger()
	a.account = models.Account{}

	tmpFile, err := os.CreateTemp("", "*.pdf")
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
		return nil, fmt.Errorf("failed to buffer PDF stream: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}

	text, err := a.extractor.ExtractText(tmpPath)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" && a.ocrEngine != nil {
		logger.Info("No text layer found, running OCR",
			logging.Field{Key: logging.FieldFile, Value: tmpPath})
		text, err = a.ocrEngine.ExtractText(context.Background(), tmpPath)
		if err != nil {
			return nil, err
		}
	}

	a.account = common.ExtractAccountInfo(text)
	transactions := parseStatementText(text)

	logger.Info("Parsed PDF statement",
		logging.Field{Key: logging.FieldParser, Value: "PDF"},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, nil
}

// AccountInfo returns the account details found by the last Parse.
func (a *Adapter) AccountInfo() models.Account {
	return a.account
}
