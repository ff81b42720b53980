package pdfparser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/parsererror"

	"github.com/dslipak/pdf"
)

// TextExtractor extracts the text layer from a PDF file.
type TextExtractor interface {
	ExtractText(filePath string) (string, error)
}

// RealTextExtractor reads the text layer through the pdf library. Scanned
// statements have no text layer and come back empty; the adapter handles
// those through OCR.
type RealTextExtractor struct {
	logger logging.Logger
}

// NewRealTextExtractor creates a RealTextExtractor.
func NewRealTextExtractor(logger logging.Logger) *RealTextExtractor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &RealTextExtractor{logger: logger}
}

// ExtractText returns the document text, one extracted row per line.
func (e *RealTextExtractor) ExtractText(filePath string) (string, error) {
	file, err := os.Open(filePath) // #nosec G304 -- path is our own temporary file
	if err != nil {
		return "", fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close PDF file")
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat PDF file: %w", err)
	}

	return e.extract(file, info.Size(), filePath)
}

// extract runs the actual page walk. The pdf library panics on some
// malformed documents, so the walk runs behind a recover that turns the
// panic into an invalid format error.
func (e *RealTextExtractor) extract(r io.ReaderAt, size int64, filePath string) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = &parsererror.InvalidFormatError{
				FilePath:       filePath,
				ExpectedFormat: "PDF",
				Msg:            fmt.Sprintf("malformed document: %v", rec),
			}
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "PDF",
			Msg:            err.Error(),
		}
	}

	var sb strings.Builder
	for pageNo := 1; pageNo <= reader.NumPage(); pageNo++ {
		page := reader.Page(pageNo)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			e.logger.WithError(err).Warn("Failed to read page text",
				logging.Field{Key: logging.FieldFile, Value: filePath},
				logging.Field{Key: logging.FieldPage, Value: pageNo})
			continue
		}

		for _, row := range rows {
			for i, word := range row.Content {
				if i > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(word.S)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

// MockTextExtractor is a test double returning canned text.
type MockTextExtractor struct {
	MockText string
	MockErr  error
}

// NewMockTextExtractor creates a MockTextExtractor with the given canned
// result.
func NewMockTextExtractor(text string, err error) *MockTextExtractor {
	return &MockTextExtractor{MockText: text, MockErr: err}
}

// ExtractText returns the canned result.
func (m *MockTextExtractor) ExtractText(string) (string, error) {
	if m.MockErr != nil {
		return "", m.MockErr
	}
	return m.MockText, nil
}
