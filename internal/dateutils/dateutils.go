// Package dateutils provides the date parsing used across the statement
// parsers and the processing pipeline.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts found on bank statements handled by this application.
const (
	DateLayoutStatement = "02-01-2006"
	DateLayoutSlash     = "02/01/2006"
	DateLayoutISO       = "2006-01-02"
	DateLayoutMonthName = "02-Jan-2006"
)

// StatementFormats is the ordered list of layouts tried when parsing a
// statement date. Day-first layouts come first since those dominate the
// supported statements.
var StatementFormats = []string{
	DateLayoutStatement,
	DateLayoutSlash,
	DateLayoutISO,
	DateLayoutMonthName,
}

var multiSpace = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace in a date string.
func CleanDateString(dateStr string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseStatementDate parses a date string using the statement layouts.
func ParseStatementDate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, format := range StatementFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// NormalizeDate converts any recognized date string to DD-MM-YYYY. Strings
// no layout matches are returned unchanged so raw statement text is never
// lost.
func NormalizeDate(dateStr string) string {
	t, err := ParseStatementDate(dateStr)
	if err != nil {
		return strings.TrimSpace(dateStr)
	}
	return t.Format(DateLayoutStatement)
}

// ToStatementFormat formats a time.Time as DD-MM-YYYY.
func ToStatementFormat(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutStatement)
}
