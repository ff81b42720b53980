package categorizer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
)

// compiledRule is a category rule with its patterns compiled for matching.
type compiledRule struct {
	name     string
	patterns []*regexp.Regexp
}

// RuleStrategy matches transaction descriptions against the ordered regex
// rule table loaded from the rule store. Rule order is significant: the
// first pattern that matches decides the category.
type RuleStrategy struct {
	rules  []compiledRule
	store  RuleStoreInterface
	logger logging.Logger
}

// NewRuleStrategy creates a RuleStrategy and compiles the rules from the
// given store. Patterns that fail to compile are skipped with a warning.
func NewRuleStrategy(store RuleStoreInterface, logger logging.Logger) *RuleStrategy {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	strategy := &RuleStrategy{
		store:  store,
		logger: logger,
	}
	strategy.loadRules()
	return strategy
}

// Name returns the name of this strategy for logging and debugging.
func (s *RuleStrategy) Name() string {
	return "Rule"
}

// Categorize attempts to categorize a transaction by matching its
// description against the compiled rule patterns.
func (s *RuleStrategy) Categorize(ctx context.Context, tx models.Transaction) (models.Category, bool, error) {
	description := strings.ToUpper(tx.Description)
	if strings.TrimSpace(description) == "" {
		return models.Category{}, false, nil
	}

	for _, rule := range s.rules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(description) {
				s.logger.WithFields(
					logging.Field{Key: "strategy", Value: s.Name()},
					logging.Field{Key: "category", Value: rule.name},
					logging.Field{Key: "pattern", Value: pattern.String()},
				).Debug("Transaction categorized by rule")

				return models.Category{
					Name:        rule.name,
					Description: fmt.Sprintf("Matched pattern: %s", pattern.String()),
				}, true, nil
			}
		}
	}

	return models.Category{}, false, nil
}

// loadRules loads and compiles the rule table from the store.
func (s *RuleStrategy) loadRules() {
	rules, err := s.store.LoadRules()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load category rules")
		return
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		cr := compiledRule{name: rule.Name}
		for _, pattern := range rule.Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				s.logger.WithError(err).WithFields(
					logging.Field{Key: "category", Value: rule.Name},
					logging.Field{Key: "pattern", Value: pattern},
				).Warn("Skipping invalid rule pattern")
				continue
			}
			cr.patterns = append(cr.patterns, re)
		}
		if len(cr.patterns) > 0 {
			compiled = append(compiled, cr)
		}
	}

	s.rules = compiled
	s.logger.WithField(logging.FieldCount, len(compiled)).Debug("Compiled category rules")
}

// CategoryNames returns the names of all loaded rules in evaluation order.
func (s *RuleStrategy) CategoryNames() []string {
	names := make([]string, 0, len(s.rules))
	for _, rule := range s.rules {
		names = append(names, rule.name)
	}
	return names
}
