package makeultra

// RuleSet is the ordered collection of rules loaded from configuration
// (spec §4.2). Order only matters for the smart-exclusion heuristic in
// GraphBuilder (spec §4.4 step 3).
type RuleSet struct {
	rules []*Rule
}

// NewRuleSet wraps rules in declaration order.
func NewRuleSet(rules []*Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

// Rules returns the rules in declaration order.
func (rs *RuleSet) Rules() []*Rule {
	return rs.rules
}

// Matches returns, in declaration order, every rule whose DoesMatch(path)
// holds.
func (rs *RuleSet) Matches(path string) []*Rule {
	var out []*Rule
	for _, r := range rs.rules {
		if r.DoesMatch(path) {
			out = append(out, r)
		}
	}
	return out
}

// sameRules reports whether a and b are the same rules in the same order,
// by identity — used by the smart-exclusion heuristic to detect that
// rewriting p would land on a path claimed by exactly the same rule set.
func sameRules(a, b []*Rule) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
