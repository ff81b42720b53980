// Package factory creates statement parsers by type or file extension.
package factory

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/stmt-sorter/internal/csvparser"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
	"fjacquet/stmt-sorter/internal/ocr"
	"fjacquet/stmt-sorter/internal/pdfparser"
	"fjacquet/stmt-sorter/internal/xlsparser"
	"fjacquet/stmt-sorter/internal/xlsxparser"
)

// ParserType defines the types of parsers available.
type ParserType string

const (
	PDF  ParserType = "pdf"
	XLS  ParserType = "xls"
	XLSX ParserType = "xlsx"
	CSV  ParserType = "csv"
)

// GetParser returns a new instance of the appropriate parser for the given type.
// It acts as a factory for creating Parser implementations.
// Deprecated: Use GetParserWithLogger instead for dependency injection.
func GetParser(parserType ParserType) (models.Parser, error) {
	return GetParserWithLogger(parserType, logging.NewLogrusAdapter("info", "text"))
}

// GetParserWithLogger returns a new instance of the appropriate parser for the given type
// with the provided logger for dependency injection.
func GetParserWithLogger(parserType ParserType, logger logging.Logger) (models.Parser, error) {
	switch parserType {
	case PDF:
		return pdfparser.NewAdapter(logger, nil, nil), nil
	case XLS:
		return xlsparser.NewAdapter(logger), nil
	case XLSX:
		return xlsxparser.NewAdapter(logger), nil
	case CSV:
		return csvparser.NewAdapter(logger), nil
	default:
		return nil, fmt.Errorf("unknown parser type: %s", parserType)
	}
}

// GetParserWithOCR is GetParserWithLogger with an OCR engine wired into the
// PDF parser so scanned statements can be read. A nil engine leaves OCR off.
func GetParserWithOCR(parserType ParserType, logger logging.Logger, engine ocr.Engine) (models.Parser, error) {
	if parserType == PDF {
		return pdfparser.NewAdapter(logger, nil, engine), nil
	}
	return GetParserWithLogger(parserType, logger)
}

// ForFilename maps a file name to the parser type for its extension.
func ForFilename(filename string) (ParserType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "pdf":
		return PDF, nil
	case "xls":
		return XLS, nil
	case "xlsx":
		return XLSX, nil
	case "csv":
		return CSV, nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", filename)
	}
}
