package categorizer

import (
	"context"
	"strings"

	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
)

// AIStrategy implements categorization using an external AI service. It is
// meant to run after the rule strategy, for descriptions the rule table
// cannot place.
type AIStrategy struct {
	aiClient AIClient
	logger   logging.Logger
}

// NewAIStrategy creates a new AIStrategy instance.
func NewAIStrategy(aiClient AIClient, logger logging.Logger) *AIStrategy {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &AIStrategy{
		aiClient: aiClient,
		logger:   logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *AIStrategy) Name() string {
	return "AI"
}

// Categorize attempts to categorize a transaction using the AI client.
func (s *AIStrategy) Categorize(ctx context.Context, tx models.Transaction) (models.Category, bool, error) {
	if s.aiClient == nil {
		return models.Category{}, false, nil
	}
	if strings.TrimSpace(tx.Description) == "" {
		return models.Category{}, false, nil
	}

	categorized, err := s.aiClient.Categorize(ctx, tx)
	if err != nil {
		return models.Category{}, false, err
	}

	if strings.TrimSpace(categorized.Category) == "" {
		s.logger.WithFields(
			logging.Field{Key: "strategy", Value: s.Name()},
			logging.Field{Key: "description", Value: tx.Description},
		).Debug("AI returned no usable category")
		return models.Category{}, false, nil
	}

	s.logger.WithFields(
		logging.Field{Key: "strategy", Value: s.Name()},
		logging.Field{Key: "description", Value: tx.Description},
		logging.Field{Key: "category", Value: categorized.Category},
	).Debug("Transaction categorized using AI")

	return models.Category{
		Name:        categorized.Category,
		Description: "Assigned by AI",
	}, true, nil
}
