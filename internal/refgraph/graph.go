package refgraph

import (
	"sort"
	"strings"

	"github.com/statutecheck/statutecheck/internal/statute"
)

// legacyRefPrefix is the old convention of smuggling a statute
// reference through a Custom condition description. The explicit
// References field supersedes it; the prefix is still honored so
// existing corpora keep their edges.
const legacyRefPrefix = "statute:"

// Graph is a directed graph over statute IDs, built once per
// verification run and never mutated afterwards.
type Graph struct {
	ids   []string
	index map[string]int
	adj   [][]int

	// Dangling references point at IDs absent from the collection.
	Dangling []Reference
}

// Reference is one declared dependency between statutes.
type Reference struct {
	From string
	To   string
}

// Build derives the reference graph from a statute collection. Edges
// come from the References field and from legacy "statute:<id>" Custom
// descriptions. References to unknown IDs become Dangling entries, not
// edges.
func Build(statutes []statute.Statute) *Graph {
	g := New(make([]string, 0, len(statutes)))
	for _, s := range statutes {
		g.addNode(s.ID)
	}
	for _, s := range statutes {
		for _, ref := range collectRefs(s) {
			if _, ok := g.index[ref]; !ok {
				g.Dangling = append(g.Dangling, Reference{From: s.ID, To: ref})
				continue
			}
			g.AddEdge(s.ID, ref)
		}
	}
	return g
}

// New creates a graph with the given nodes and no edges.
func New(ids []string) *Graph {
	g := &Graph{index: make(map[string]int, len(ids))}
	for _, id := range ids {
		g.addNode(id)
	}
	return g
}

func (g *Graph) addNode(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	i := len(g.ids)
	g.index[id] = i
	g.ids = append(g.ids, id)
	g.adj = append(g.adj, nil)
	return i
}

// AddEdge records a directed reference. Unknown endpoints are added as
// nodes; duplicate edges collapse.
func (g *Graph) AddEdge(from, to string) {
	fi := g.addNode(from)
	ti := g.addNode(to)
	for _, n := range g.adj[fi] {
		if n == ti {
			return
		}
	}
	g.adj[fi] = append(g.adj[fi], ti)
}

// Nodes returns the node IDs in insertion order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.ids...)
}

func (g *Graph) NodeCount() int { return len(g.ids) }

func (g *Graph) EdgeCount() int {
	n := 0
	for _, out := range g.adj {
		n += len(out)
	}
	return n
}

// Neighbors returns the IDs directly referenced by id.
func (g *Graph) Neighbors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.adj[i]))
	for _, n := range g.adj[i] {
		out = append(out, g.ids[n])
	}
	sort.Strings(out)
	return out
}

func collectRefs(s statute.Statute) []string {
	refs := append([]string(nil), s.References...)
	for _, c := range s.Preconditions {
		statute.Walk(c, func(node statute.Condition) bool {
			if custom, ok := node.(statute.Custom); ok {
				if id, found := strings.CutPrefix(custom.Description, legacyRefPrefix); found {
					if id = strings.TrimSpace(id); id != "" {
						refs = append(refs, id)
					}
				}
			}
			return true
		})
	}
	// self-references stay: the cycle check reports them as length-1 cycles
	seen := make(map[string]struct{}, len(refs))
	out := refs[:0]
	for _, r := range refs {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
