package categorizer

import "fjacquet/stmt-sorter/internal/models"

// RuleStoreInterface defines the interface for rule storage.
// This allows for dependency injection and easier testing.
type RuleStoreInterface interface {
	LoadRules() ([]models.CategoryRule, error)
}
