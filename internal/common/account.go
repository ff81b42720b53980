package common

import (
	"path/filepath"
	"regexp"
	"strings"

	"fjacquet/stmt-sorter/internal/models"
)

// Patterns for the account block printed above the transaction table on
// statement PDFs. The holder name follows a salutation and runs until a
// line break, a door number marker or the address label.
var (
	accountNumberPattern = regexp.MustCompile(`(?i)Account\s*(?:No|Number)[:\s]+(\d+)`)
	holderNamePattern    = regexp.MustCompile(`(?i)(?:Mr\.|Mrs\.|Ms\.?)\s*([A-Z\s]+?)(?:\n|#|Address)`)
)

// ExtractAccountInfo pulls the account holder details out of statement text.
// Fields the text does not carry stay empty.
func ExtractAccountInfo(text string) models.Account {
	account := models.Account{BankName: models.DefaultBankName}

	if m := accountNumberPattern.FindStringSubmatch(text); len(m) > 1 {
		account.Number = m[1]
	}
	if m := holderNamePattern.FindStringSubmatch(text); len(m) > 1 {
		account.HolderName = strings.TrimSpace(m[1])
	}
	return account
}

// SanitizeFilename reduces a client-supplied file name to a filesystem-safe
// form. Path separators and traversal sequences are stripped so uploads can
// never escape the working directory.
func SanitizeFilename(name string) string {
	sanitized := strings.TrimSpace(filepath.Base(name))
	sanitized = strings.ReplaceAll(sanitized, " ", "_")

	// Keep alphanumeric, underscores, hyphens, and dots
	var result strings.Builder
	for _, r := range sanitized {
		if (r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '_' || r == '-' || r == '.' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}
	sanitized = result.String()

	for strings.Contains(sanitized, "..") {
		sanitized = strings.ReplaceAll(sanitized, "..", "_")
	}
	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}
	sanitized = strings.Trim(sanitized, "_.")

	if sanitized == "" {
		sanitized = "upload"
	}
	return sanitized
}
