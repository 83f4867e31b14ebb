package refgraph

import "sort"

// Metrics is the aggregate graph summary exposed by the public API.
type Metrics struct {
	NodeCount   int                `json:"node_count"`
	EdgeCount   int                `json:"edge_count"`
	Cycles      [][]string         `json:"cycles,omitempty"`
	SCCCount    int                `json:"scc_count"`
	Diameter    int                `json:"diameter"`
	Connected   bool               `json:"connected"`
	PageRank    map[string]float64 `json:"pagerank,omitempty"`
	Betweenness map[string]float64 `json:"betweenness,omitempty"`
	TopRanked   []string           `json:"top_ranked,omitempty"`
	DanglingRef []Reference        `json:"dangling_references,omitempty"`
}

// Analyze runs every graph algorithm over a snapshot. Each algorithm is
// a pure function of the graph; none mutates statute data.
func Analyze(g *Graph) Metrics {
	m := Metrics{
		NodeCount:   g.NodeCount(),
		EdgeCount:   g.EdgeCount(),
		Cycles:      g.Cycles(),
		SCCCount:    g.SCCCount(),
		PageRank:    g.PageRank(0.85, 100, 1e-9),
		Betweenness: g.Betweenness(),
		DanglingRef: g.Dangling,
	}
	m.Diameter, m.Connected = g.Diameter()

	ids := g.Nodes()
	sort.Slice(ids, func(i, j int) bool {
		ri, rj := m.PageRank[ids[i]], m.PageRank[ids[j]]
		if ri != rj {
			return ri > rj
		}
		return ids[i] < ids[j]
	})
	if len(ids) > 10 {
		ids = ids[:10]
	}
	m.TopRanked = ids
	return m
}
