// Package parser provides the shared plumbing embedded by every statement
// parser implementation.
package parser

import (
	"fjacquet/stmt-sorter/internal/common"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
)

// LoggerConfigurable is implemented by parsers whose logger can be replaced
// after construction.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
	GetLogger() logging.Logger
}

// BaseParser provides common functionality for all parser implementations.
// Format parsers embed it to inherit logger wiring and CSV export:
//
//	type Adapter struct {
//		parser.BaseParser
//		// format-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a BaseParser with the provided logger. A nil logger
// falls back to the default adapter.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return BaseParser{logger: logger}
}

// SetLogger replaces the parser's logger. Nil loggers are ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// WriteToCSV writes transactions through the shared CSV writer so every
// parser produces the same column layout.
func (b *BaseParser) WriteToCSV(transactions []models.Transaction, csvFile string) error {
	b.logger.Info("Writing transactions to CSV using common writer",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return common.WriteTransactionsToCSV(transactions, csvFile)
}
