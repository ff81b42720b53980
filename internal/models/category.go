package models

// Category represents a transaction category
type Category struct {
	Name        string
	Description string
}

// CategoryRule maps a category name to the ordered regex patterns that
// select it. Rule order matters: the first matching pattern wins, so the
// rules file lists specific categories before generic ones.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// RulesConfig is the structure of the category rules YAML file.
type RulesConfig struct {
	Categories []CategoryRule `yaml:"categories"`
}
