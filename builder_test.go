package makeultra

import (
	"context"
	"testing"
)

func buildGraph(t *testing.T, rules *RuleSet, paths ...string) *FileGraph {
	t.Helper()
	g := NewFileGraph()
	b := NewGraphBuilder(rules, g)

	ch := make(chan string, len(paths))
	for _, p := range paths {
		ch <- p
	}
	close(ch)

	if err := b.Build(context.Background(), ch); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

// Scenario 1: basic single-rule.
func TestBuilderBasicRule(t *testing.T) {
	// The exclude keeps the rule from matching its own output; without it
	// a.min.js would be rewritten to a.min.min.js, and so on without end.
	r := mustRule(t, RuleConfig{From: `(?P<n>.*)\.js$`, To: "${n}.min.js", Exclude: `\.min\.js$`, Command: "terser $i -o $o"})
	rs := NewRuleSet([]*Rule{r})

	g := buildGraph(t, rs, "a.js")

	if g.Len() != 2 {
		t.Fatalf("expected 2 nodes, got %d", g.Len())
	}
	aID, _ := g.InsertOrLookup("a.js")
	edges := g.OutgoingEdges(aID)
	if len(edges) != 1 || g.Path(edges[0].Target) != "a.min.js" {
		t.Errorf("expected a.js -> a.min.js, got %v", edges)
	}
}

// Scenario 2: rule chaining.
func TestBuilderRuleChaining(t *testing.T) {
	r1 := mustRule(t, RuleConfig{From: `(?P<n>.*)\.js$`, To: "${n}.min.js", Command: "terser $i -o $o"})
	r2 := mustRule(t, RuleConfig{From: `(?P<n>.*)\.min\.js$`, To: "${n}.min.js.br", Command: "brotli -f $i"})
	rs := NewRuleSet([]*Rule{r1, r2})

	g := buildGraph(t, rs, "a.js")

	if g.Len() != 3 {
		t.Fatalf("expected 3 nodes, got %d", g.Len())
	}
	aID, _ := g.InsertOrLookup("a.js")
	minID, _ := g.InsertOrLookup("a.min.js")
	brID, _ := g.InsertOrLookup("a.min.js.br")

	aEdges := g.OutgoingEdges(aID)
	if len(aEdges) != 1 || aEdges[0].Target != minID {
		t.Errorf("expected a.js -> a.min.js, got %v", aEdges)
	}
	minEdges := g.OutgoingEdges(minID)
	if len(minEdges) != 1 || minEdges[0].Target != brID {
		t.Errorf("expected a.min.js -> a.min.js.br, got %v", minEdges)
	}
}

// Scenario 3: smart exclusion.
func TestBuilderSmartExclusion(t *testing.T) {
	// r1 is the broad rule: applying it to a file already matching it
	// yields another file that still matches exactly {r1, r2}, so smart
	// exclusion suppresses it in favor of the narrower r2.
	r1 := mustRule(t, RuleConfig{From: `(.*)\.js$`, To: "${1}.min.js", Command: "terser"})
	r2 := mustRule(t, RuleConfig{From: `(?P<n>.*)\.min\.js$`, To: "${n}.min.js.br", Command: "brotli"})
	rs := NewRuleSet([]*Rule{r1, r2})

	g := buildGraph(t, rs, "a.min.js")

	id, _ := g.InsertOrLookup("a.min.js")
	edges := g.OutgoingEdges(id)
	if len(edges) != 1 {
		t.Fatalf("expected exactly one edge from smart exclusion, got %d", len(edges))
	}
	if edges[0].Rule != r2 {
		t.Error("expected the narrower rule (r2) to win")
	}
}

func TestBuilderSelfLoopTerminates(t *testing.T) {
	r := mustRule(t, RuleConfig{From: `a`, To: "a", Command: "noop"})
	rs := NewRuleSet([]*Rule{r})

	g := buildGraph(t, rs, "a")

	if g.Len() != 1 {
		t.Fatalf("expected a single node for a self-loop, got %d", g.Len())
	}
}
