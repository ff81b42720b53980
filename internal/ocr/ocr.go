// Package ocr recovers text from scanned statements by rasterizing PDF
// pages and running them through an OCR engine.
package ocr

import (
	"context"
	"regexp"
)

// Engine extracts text from a PDF file that has no usable text layer.
type Engine interface {
	ExtractText(ctx context.Context, pdfPath string) (string, error)
}

// OCR misreads the decimal point in printed amounts as ';' or ':' often
// enough to break amount extraction. Only comma-grouped figures are
// repaired so times like 10:23 are left alone.
var ocrDecimalArtifact = regexp.MustCompile(`(\d{1,3}(?:,\d{2,3})+)[;:](\d{2})\b`)

// CleanText repairs common OCR artifacts in statement text.
func CleanText(text string) string {
	return ocrDecimalArtifact.ReplaceAllString(text, "$1.$2")
}
