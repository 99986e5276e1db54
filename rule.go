package makeultra

import (
	"fmt"
	"regexp"
)

// RuleConfig is a rule as it appears in makeultra.toml's [[rule]] array
// (spec §4.1, §6). Compiling it into a Rule is the only place regex syntax
// errors surface, matching original_source/src/rule.rs's eager-compile
// behavior.
type RuleConfig struct {
	From    string `toml:"from"`
	To      string `toml:"to"`
	Command string `toml:"command"`
	Exclude string `toml:"exclude"`
}

// Rule is a single pattern -> output mapping plus the command template used
// to produce the output from the input (spec §3). Rules are immutable once
// built and are referenced, never copied, by the edges they induce.
type Rule struct {
	from    *regexp.Regexp
	to      string
	exclude *regexp.Regexp
	command string
}

// NewRule compiles a RuleConfig into a Rule. A malformed from/exclude
// pattern is a fatal configuration error (spec §7).
func NewRule(cfg RuleConfig) (*Rule, error) {
	from, err := regexp.Compile(cfg.From)
	if err != nil {
		return nil, fmt.Errorf("invalid from pattern %q: %w", cfg.From, err)
	}

	var exclude *regexp.Regexp
	if cfg.Exclude != "" {
		exclude, err = regexp.Compile(cfg.Exclude)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", cfg.Exclude, err)
		}
	}

	return &Rule{from: from, to: cfg.To, exclude: exclude, command: cfg.Command}, nil
}

// DoesMatch reports whether from matches path and, if present, exclude
// does not (spec §4.1).
func (r *Rule) DoesMatch(path string) bool {
	if !r.from.MatchString(path) {
		return false
	}
	return r.exclude == nil || !r.exclude.MatchString(path)
}

// Apply replaces every non-overlapping match of from in path with to,
// honoring named and numbered capture-group backreferences. If from does
// not match, the result equals path (regexp.ReplaceAllString's own
// no-match behavior already gives us this for free).
func (r *Rule) Apply(path string) string {
	return r.from.ReplaceAllString(path, r.to)
}

// Command returns the rule's shell command template.
func (r *Rule) Command() string {
	return r.command
}

// String renders the rule as "from -> to" for diagnostics.
func (r *Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.from.String(), r.to)
}
