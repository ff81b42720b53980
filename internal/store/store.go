// Package store loads and persists the category rule table used to
// classify statement transactions.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"fjacquet/stmt-sorter/internal/config"
	"fjacquet/stmt-sorter/internal/models"
)

var log = config.Logger

// SetLogger sets the logger used by this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// RuleStore reads and writes category rules from a YAML file. When no file
// is present the built-in SBI rule table is used instead.
type RuleStore struct {
	RulesFile string
}

// NewRuleStore creates a RuleStore backed by the given rules file path.
// An empty path means the standard locations are searched for
// DefaultRulesFileName.
func NewRuleStore(rulesFile string) *RuleStore {
	return &RuleStore{RulesFile: rulesFile}
}

// FindConfigFile locates a configuration file by checking several standard
// locations in order: the path itself, a config/ subdirectory of the working
// directory, and ~/.config/stmt-sorter.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", fmt.Errorf("file not found: %s", filename)
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		location := filepath.Join(home, ".config", "stmt-sorter", filename)
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	return "", fmt.Errorf("config file not found: %s", filename)
}

// resolveRulesFile returns the path of the rules file to read, or an empty
// string when none exists.
func (s *RuleStore) resolveRulesFile() string {
	name := s.RulesFile
	if name == "" {
		name = DefaultRulesFileName
	}
	path, err := s.FindConfigFile(name)
	if err != nil {
		return ""
	}
	return path
}

// LoadRules returns the ordered category rule table. Rules come from the
// configured YAML file when one exists, otherwise from the built-in table.
// Rules without a name or without patterns are skipped.
func (s *RuleStore) LoadRules() ([]models.CategoryRule, error) {
	path := s.resolveRulesFile()
	if path == "" {
		log.WithField("file", s.RulesFile).Debug("No rules file found, using built-in rules")
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file %s: %w", path, err)
	}

	rules, err := parseRules(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing rules file %s: %w", path, err)
	}

	valid := make([]models.CategoryRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Name == "" || len(rule.Patterns) == 0 {
			log.WithField("category", rule.Name).Warning("Skipping rule without name or patterns")
			continue
		}
		valid = append(valid, rule)
	}
	if len(valid) == 0 {
		log.WithField("file", path).Warning("Rules file contains no usable rules, using built-in rules")
		return DefaultRules(), nil
	}

	log.WithFields(logrus.Fields{
		"file":  path,
		"count": len(valid),
	}).Debug("Loaded category rules")
	return valid, nil
}

// parseRules accepts either the wrapped form with a top-level categories key
// or a bare list of rules. A mapping that unmarshals cleanly wins even when
// its category list is empty; LoadRules treats the empty result as "no usable
// rules" and falls back to the built-in table.
func parseRules(data []byte) ([]models.CategoryRule, error) {
	var cfg models.RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err == nil {
		return cfg.Categories, nil
	}

	var rules []models.CategoryRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// SaveRules writes the rule table to the configured rules file, creating
// parent directories as needed. An existing file found through the standard
// locations is overwritten in place.
func (s *RuleStore) SaveRules(rules []models.CategoryRule) error {
	name := s.RulesFile
	if name == "" {
		name = DefaultRulesFileName
	}
	path, err := s.FindConfigFile(name)
	if err != nil {
		path = name
	}

	data, err := yaml.Marshal(models.RulesConfig{Categories: rules})
	if err != nil {
		return fmt.Errorf("error marshaling rules: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing rules file %s: %w", path, err)
	}

	log.WithFields(logrus.Fields{
		"file":  path,
		"count": len(rules),
	}).Info("Saved category rules")
	return nil
}
