package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRules reads a YAML rules file and merges it over the built-in
// table. User text overrides extend the defaults; a user enum for an
// already known entry replaces its options.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var user Rules
	if err := yaml.Unmarshal(data, &user); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	rules := DefaultRules()
	rules.TextSections = append(rules.TextSections, user.TextSections...)
	rules.TextEntries = append(rules.TextEntries, user.TextEntries...)
	for name, opts := range user.Enums {
		rules.Enums[name] = opts
	}
	if user.MaxInt > 0 {
		rules.MaxInt = user.MaxInt
	}
	return rules, nil
}
