// Package categorizer assigns categories to statement transactions.
// Categorization runs a chain of strategies in order: the regex rule table
// first, then an optional AI fallback. Transactions no strategy can place
// fall back to a category based on their direction.
package categorizer

import (
	"context"
	"strings"

	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
	"fjacquet/stmt-sorter/internal/parsererror"
)

// Categorizer runs the configured categorization strategies over
// transactions.
type Categorizer struct {
	strategies []Strategy
	logger     logging.Logger
}

// NewCategorizer creates a Categorizer with the rule strategy from the given
// store and, when an AI client is provided, the AI fallback strategy.
func NewCategorizer(ruleStore RuleStoreInterface, aiClient AIClient, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	strategies := []Strategy{NewRuleStrategy(ruleStore, logger)}
	if aiClient != nil {
		strategies = append(strategies, NewAIStrategy(aiClient, logger))
	}

	return &Categorizer{
		strategies: strategies,
		logger:     logger,
	}
}

// Categorize assigns a category to the transaction. Strategies run in order
// and the first match wins. A strategy error is logged and the next strategy
// is tried, so categorization itself never fails.
func (c *Categorizer) Categorize(ctx context.Context, tx models.Transaction) models.Category {
	if strings.TrimSpace(tx.Description) == "" {
		return c.fallbackCategory(tx)
	}

	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, tx)
		if err != nil {
			c.logger.WithError(&parsererror.CategorizationError{
				Description: tx.Description,
				Strategy:    strategy.Name(),
				Err:         err,
			}).Warn("Categorization strategy failed")
			continue
		}
		if found {
			return category
		}
	}

	return c.fallbackCategory(tx)
}

// fallbackCategory picks the direction based category for transactions no
// strategy could place.
func (c *Categorizer) fallbackCategory(tx models.Transaction) models.Category {
	direction := tx.Type
	if direction == "" {
		direction, _ = tx.DetermineType()
	}

	name := models.CategoryOtherDeposit
	if direction == models.TypeWithdrawal {
		name = models.CategoryOtherWithdrawal
	}
	return models.Category{
		Name:        name,
		Description: "No matching rule",
	}
}
