package categorizer

import (
	"context"

	"fjacquet/stmt-sorter/internal/models"
)

// AIClient defines the interface for AI-based categorization services.
// This abstraction allows the core categorization logic to be tested
// independently of external API calls.
type AIClient interface {
	// Categorize takes a transaction and returns it with the Category field
	// filled in, or an error if categorization fails.
	Categorize(ctx context.Context, tx models.Transaction) (models.Transaction, error)
}
