package refgraph

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
)

// ToDOT renders the reference graph for visualization.
func (g *Graph) ToDOT() (string, error) {
	out := gographviz.NewGraph()
	if err := out.SetName("statutes"); err != nil {
		return "", err
	}
	if err := out.SetDir(true); err != nil {
		return "", err
	}

	for _, id := range g.ids {
		if err := out.AddNode("statutes", strconv.Quote(id), nil); err != nil {
			return "", fmt.Errorf("failed to add node %q: %w", id, err)
		}
	}
	for from, adj := range g.adj {
		for _, to := range adj {
			if err := out.AddEdge(strconv.Quote(g.ids[from]), strconv.Quote(g.ids[to]), true, nil); err != nil {
				return "", fmt.Errorf("failed to add edge %s->%s: %w", g.ids[from], g.ids[to], err)
			}
		}
	}
	return out.String(), nil
}

// FromDOT ingests a DOT digraph whose node names are statute IDs, for
// standalone graph analysis of an externally produced reference graph.
func FromDOT(dot string) (*Graph, error) {
	ast, err := gographviz.ParseString(dot)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DOT: %w", err)
	}

	parsed := gographviz.NewGraph()
	if err := gographviz.Analyse(ast, parsed); err != nil {
		return nil, fmt.Errorf("failed to analyze DOT: %w", err)
	}

	g := New(nil)
	for _, n := range parsed.Nodes.Nodes {
		g.addNode(unquote(n.Name))
	}
	for _, e := range parsed.Edges.Edges {
		g.AddEdge(unquote(e.Src), unquote(e.Dst))
	}
	return g, nil
}

// unquote strips the quoting DOT node names usually carry.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	return s
}
