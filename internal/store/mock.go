package store

import (
	"fjacquet/stmt-sorter/internal/models"
)

// MockRuleStore is an in-memory rule store for testing.
type MockRuleStore struct {
	Rules []models.CategoryRule
	Saved []models.CategoryRule

	// Error flags for testing error conditions
	LoadRulesError error
	SaveRulesError error
}

// LoadRules returns a copy of the mock rules.
func (m *MockRuleStore) LoadRules() ([]models.CategoryRule, error) {
	if m.LoadRulesError != nil {
		return nil, m.LoadRulesError
	}
	if m.Rules == nil {
		return []models.CategoryRule{}, nil
	}
	// Return a copy to avoid external modifications
	result := make([]models.CategoryRule, len(m.Rules))
	copy(result, m.Rules)
	return result, nil
}

// SaveRules records the rules that were saved.
func (m *MockRuleStore) SaveRules(rules []models.CategoryRule) error {
	if m.SaveRulesError != nil {
		return m.SaveRulesError
	}
	m.Saved = append([]models.CategoryRule(nil), rules...)
	return nil
}
