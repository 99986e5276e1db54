package makeultra

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// GraphBuilder expands a FileGraph to its fixpoint under a RuleSet (spec
// §4.4): every discovered path is matched against the rule set, matching
// rules are applied to synthesize derived paths, and newly created derived
// paths are recursively expanded in turn.
type GraphBuilder struct {
	rules *RuleSet
	graph *FileGraph
}

// NewGraphBuilder returns a builder that expands graph under rules.
func NewGraphBuilder(rules *RuleSet, graph *FileGraph) *GraphBuilder {
	return &GraphBuilder{rules: rules, graph: graph}
}

// Build consumes paths (closed by the caller once the walker is done) and
// expands the graph to its fixpoint. Paths and their derived descendants
// are processed concurrently; Build returns the first error encountered,
// if any, after all in-flight expansion has unwound.
func (b *GraphBuilder) Build(ctx context.Context, paths <-chan string) error {
	g, ctx := errgroup.WithContext(ctx)
	for path := range paths {
		path := path
		g.Go(func() error {
			return b.expand(ctx, path)
		})
	}
	return g.Wait()
}

// expand runs the per-path procedure of spec §4.4 steps 1-6 for p and
// recurses into any newly created derived node.
func (b *GraphBuilder) expand(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Step 1: compute M = RuleSet.matches(p). No lock required (Rule
	// matching only reads immutable compiled regexes).
	matches := b.rules.Matches(p)

	srcID, _ := b.graph.InsertOrLookup(p)

	g, ctx := errgroup.WithContext(ctx)
	for _, r := range matches {
		r := r

		// Step 2: q = r.apply(p).
		q := r.Apply(p)

		// Step 3: smart exclusion — a broader rule is redundant if the
		// rewritten path would be claimed by the exact same rule set.
		if len(matches) > 1 && sameRules(b.rules.Matches(q), matches) {
			continue
		}

		// Steps 4-5: insert q as a node (reusing an existing id if
		// present) and insert-or-update the edge p ->[r] q.
		tgtID, created := b.graph.InsertOrLookup(q)
		b.graph.InsertOrUpdateEdge(srcID, tgtID, r)

		// Step 6: recurse into q only if it is new and distinct from p —
		// this, plus InsertOrLookup's single-creator guarantee, is what
		// makes the fixpoint expansion terminate and expand each derived
		// path exactly once.
		if q != p && created {
			g.Go(func() error {
				return b.expand(ctx, q)
			})
		}
	}
	return g.Wait()
}
