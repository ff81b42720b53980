// Package parsererror defines the error types shared by the statement
// parsers, the categorizer, and the processing pipeline.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNoTransactions is returned when a statement file was read successfully
// but yielded no usable transaction rows.
var ErrNoTransactions = errors.New("no transactions found")

// ParseError represents a failure to parse a single field or line.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a rejected input file.
type ValidationError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// CategorizationError represents a categorization strategy failure.
type CategorizationError struct {
	Description string
	Strategy    string
	Err         error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for %q using %s: %v",
		e.Description, e.Strategy, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input file whose content does not match
// the format its extension promised.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Snippet        string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.Snippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// ExtractionError represents a failure in a text extraction stage (PDF text
// layer, rasterization, OCR) even though the file itself may be valid.
type ExtractionError struct {
	FilePath string
	Stage    string
	Reason   string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed in file '%s' at stage '%s': %s",
		e.FilePath, e.Stage, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
