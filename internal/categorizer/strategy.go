package categorizer

import (
	"context"

	"fjacquet/stmt-sorter/internal/models"
)

// Strategy defines one method for categorizing a transaction. Strategies
// are tried in order and the first match wins.
type Strategy interface {
	// Categorize attempts to categorize a transaction using this strategy.
	// Returns the category, a boolean indicating whether the strategy
	// produced a match, and any error encountered along the way.
	Categorize(ctx context.Context, tx models.Transaction) (models.Category, bool, error)

	// Name returns the name of this strategy for logging and debugging.
	Name() string
}
