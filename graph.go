package makeultra

import "sync"

// NodeID is a stable identifier for a path node. Identifiers never change
// across subsequent graph mutations (spec §4.3); the graph is append-mostly
// and a NodeID is simply its index of creation.
type NodeID int

// Edge is a directed link from one path node to another, annotated with
// the Rule that produced it (spec §3). Between any two nodes at most one
// edge exists per rule slot; inserting again just updates the annotation.
type Edge struct {
	Source NodeID
	Target NodeID
	Rule   *Rule
}

// node is a path node plus the bookkeeping the graph needs around it. Its
// own mutex guards the fields a writer touches when adding an edge that
// touches this node — kept path-local and brief, per spec §4.3/§5.
type node struct {
	path string

	mu       sync.Mutex
	outEdges []*Edge
	inDegree int
}

// FileGraph is the concurrent directed graph of file paths described in
// spec §4.3: a path->node index for O(1) expected insert-or-lookup, plus
// an append-only node set guarded by a single-writer/multi-reader lease.
type FileGraph struct {
	mu        sync.RWMutex
	pathIndex map[string]NodeID
	nodes     []*node
}

// NewFileGraph returns an empty graph.
func NewFileGraph() *FileGraph {
	return &FileGraph{pathIndex: make(map[string]NodeID)}
}

// InsertOrLookup returns the node id for path, creating it if it doesn't
// exist yet. created is true only for the single caller that actually
// created the node — GraphBuilder relies on this flag being set exactly
// once, under the same lease that created the node, to expand each derived
// path at most once (spec §4.4).
func (g *FileGraph) InsertOrLookup(path string) (id NodeID, created bool) {
	g.mu.RLock()
	if id, ok := g.pathIndex[path]; ok {
		g.mu.RUnlock()
		return id, false
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	if id, ok := g.pathIndex[path]; ok {
		return id, false
	}
	id = NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &node{path: path})
	g.pathIndex[path] = id
	return id, true
}

func (g *FileGraph) node(id NodeID) *node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes[id]
}

// Path returns the path string for id.
func (g *FileGraph) Path(id NodeID) string {
	return g.node(id).path
}

// InsertOrUpdateEdge inserts the edge source->target annotated with rule,
// or updates the rule annotation if the edge already exists (spec §3). A
// newly inserted edge increments the target's incoming-edge count.
func (g *FileGraph) InsertOrUpdateEdge(source, target NodeID, rule *Rule) *Edge {
	src := g.node(source)

	src.mu.Lock()
	for _, e := range src.outEdges {
		if e.Target == target {
			e.Rule = rule
			src.mu.Unlock()
			return e
		}
	}
	e := &Edge{Source: source, Target: target, Rule: rule}
	src.outEdges = append(src.outEdges, e)
	src.mu.Unlock()

	tgt := g.node(target)
	tgt.mu.Lock()
	tgt.inDegree++
	tgt.mu.Unlock()

	return e
}

// OutgoingEdges returns a snapshot of id's outgoing edges.
func (g *FileGraph) OutgoingEdges(id NodeID) []*Edge {
	n := g.node(id)
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Edge, len(n.outEdges))
	copy(out, n.outEdges)
	return out
}

// InDegree returns the number of incoming edges to id.
func (g *FileGraph) InDegree(id NodeID) int {
	n := g.node(id)
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.inDegree
}

// hasSelfLoop reports whether id has an outgoing edge back to itself.
func (g *FileGraph) hasSelfLoop(id NodeID) bool {
	n := g.node(id)
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range n.outEdges {
		if e.Target == id {
			return true
		}
	}
	return false
}

// Nodes returns every node id currently in the graph.
func (g *FileGraph) Nodes() []NodeID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]NodeID, len(g.nodes))
	for i := range g.nodes {
		ids[i] = NodeID(i)
	}
	return ids
}

// Len returns the number of nodes in the graph.
func (g *FileGraph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Roots returns every node that is a root per spec §4.6: no incoming
// edges, or exactly one incoming edge that is a self-loop.
func (g *FileGraph) Roots() []NodeID {
	var roots []NodeID
	for _, id := range g.Nodes() {
		switch indeg := g.InDegree(id); {
		case indeg == 0:
			roots = append(roots, id)
		case indeg == 1 && g.hasSelfLoop(id):
			roots = append(roots, id)
		}
	}
	return roots
}
