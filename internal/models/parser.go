package models

import (
	"io"

	"fjacquet/stmt-sorter/internal/logging"
)

// Parser defines the interface all statement parser implementations satisfy.
// Parse reads a whole statement file from the reader and returns its rows in
// statement order. Formats that need random access (PDF, XLS) buffer the
// stream themselves.
type Parser interface {
	Parse(r io.Reader) ([]Transaction, error)
	SetLogger(logger logging.Logger)
}

// AccountExtractor is implemented by parsers able to recover account holder
// details from the statement in addition to the rows. Callers type-assert
// after a successful Parse.
type AccountExtractor interface {
	AccountInfo() Account
}
