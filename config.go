package makeultra

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level shape of makeultra.toml (spec §6): a list of
// source folders to walk and the ordered rule set to build from them.
type Config struct {
	Folders []string     `toml:"folders"`
	Rules   []RuleConfig `toml:"rule"`
}

// LoadConfig reads and parses the TOML document at path. A missing
// Folders key defaults to the current directory, matching
// original_source/src/config.rs's default_folders fallback.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}

	if len(cfg.Folders) == 0 {
		cfg.Folders = []string{"."}
	}

	return &cfg, nil
}

// BuildRuleSet compiles every RuleConfig in the document into a RuleSet,
// in declaration order. A malformed rule is a fatal configuration error
// (spec §4.1, §7).
func (c *Config) BuildRuleSet() (*RuleSet, error) {
	rules := make([]*Rule, 0, len(c.Rules))
	for i, rc := range c.Rules {
		r, err := NewRule(rc)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, r)
	}
	return NewRuleSet(rules), nil
}
