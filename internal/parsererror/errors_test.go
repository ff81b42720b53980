package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "basic parse error",
			err: &ParseError{
				Parser: "pdf",
				Field:  "amount",
				Value:  "12,34x",
				Err:    errors.New("invalid decimal"),
			},
			expected: "pdf: failed to parse amount='12,34x': invalid decimal",
		},
		{
			name: "parse error with empty value",
			err: &ParseError{
				Parser: "csv",
				Field:  "date",
				Value:  "",
				Err:    errors.New("empty date"),
			},
			expected: "csv: failed to parse date='': empty date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{
		Parser: "xlsx",
		Field:  "amount",
		Value:  "bad",
		Err:    originalErr,
	}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		FilePath: "/tmp/statement.txt",
		Reason:   "unsupported file extension",
	}
	assert.Equal(t, "validation failed for /tmp/statement.txt: unsupported file extension", err.Error())
	assert.Nil(t, err.Unwrap())

	underlying := errors.New("underlying error")
	wrapped := &ValidationError{FilePath: "f.pdf", Reason: "unreadable", Err: underlying}
	assert.True(t, errors.Is(wrapped, underlying))
}

func TestCategorizationError(t *testing.T) {
	originalErr := errors.New("API timeout")
	catErr := &CategorizationError{
		Description: "UPI/DR/1234",
		Strategy:    "ai",
		Err:         originalErr,
	}

	assert.Equal(t, `categorization failed for "UPI/DR/1234" using ai: API timeout`, catErr.Error())
	assert.Equal(t, originalErr, catErr.Unwrap())
	assert.True(t, errors.Is(catErr, originalErr))
}

func TestInvalidFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvalidFormatError
		expected string
	}{
		{
			name: "with content snippet",
			err: &InvalidFormatError{
				FilePath:       "/tmp/statement.pdf",
				ExpectedFormat: "PDF",
				Snippet:        "PK\x03\x04",
				Msg:            "file appears to be a zip archive",
			},
			expected: "invalid format in file '/tmp/statement.pdf': file appears to be a zip archive. Expected: PDF. Content snippet: 'PK\x03\x04'",
		},
		{
			name: "without content snippet",
			err: &InvalidFormatError{
				FilePath:       "/tmp/statement.csv",
				ExpectedFormat: "CSV",
				Msg:            "missing header row",
			},
			expected: "invalid format in file '/tmp/statement.csv': missing header row. Expected: CSV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestExtractionError(t *testing.T) {
	underlying := errors.New("exit status 1")
	err := &ExtractionError{
		FilePath: "/tmp/scan.pdf",
		Stage:    "ocr",
		Reason:   "tesseract failed",
		Err:      underlying,
	}

	assert.Equal(t, "extraction failed in file '/tmp/scan.pdf' at stage 'ocr': tesseract failed", err.Error())
	assert.True(t, errors.Is(err, underlying))

	var target *ExtractionError
	assert.True(t, errors.As(err, &target))
}

func TestErrNoTransactions(t *testing.T) {
	wrapped := fmt.Errorf("processing statement: %w", ErrNoTransactions)
	assert.True(t, errors.Is(wrapped, ErrNoTransactions))
}
