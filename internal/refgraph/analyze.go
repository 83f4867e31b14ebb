package refgraph

import (
	"sort"
	"strings"
)

// Cycles enumerates the cycles reachable by depth-first search using
// white/grey/black coloring. Each back edge into the grey stack yields
// one cycle; cycles are rotated to start at their smallest ID and
// deduplicated, so A→B→A and B→A→B report once.
func (g *Graph) Cycles() [][]string {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make([]int, len(g.ids))
	stack := make([]int, 0, len(g.ids))
	seen := make(map[string]struct{})
	var cycles [][]string

	var dfs func(n int)
	dfs = func(n int) {
		color[n] = grey
		stack = append(stack, n)
		for _, next := range g.adj[n] {
			switch color[next] {
			case white:
				dfs(next)
			case grey:
				// back edge: the cycle is the stack suffix from next
				start := len(stack) - 1
				for start >= 0 && stack[start] != next {
					start--
				}
				if start < 0 {
					continue
				}
				cycle := make([]string, 0, len(stack)-start)
				for _, i := range stack[start:] {
					cycle = append(cycle, g.ids[i])
				}
				cycle = normalizeCycle(cycle)
				key := strings.Join(cycle, "\x00")
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					cycles = append(cycles, cycle)
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[n] = black
	}

	for n := range g.ids {
		if color[n] == white {
			dfs(n)
		}
	}
	return cycles
}

func normalizeCycle(cycle []string) []string {
	min := 0
	for i, id := range cycle {
		if id < cycle[min] {
			min = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[min:]...)
	out = append(out, cycle[:min]...)
	return out
}

// SCCs returns the strongly connected components via Tarjan's
// algorithm, each sorted by ID.
func (g *Graph) SCCs() [][]string {
	n := len(g.ids)
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var (
		stack   []int
		counter int
		sccs    [][]string
	)

	var strongconnect func(v int)
	strongconnect = func(v int) {
		index[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.adj[v] {
			if index[w] == -1 {
				strongconnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], index[w])
			}
		}

		if lowlink[v] == index[v] {
			var comp []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, g.ids[w])
				if w == v {
					break
				}
			}
			sort.Strings(comp)
			sccs = append(sccs, comp)
		}
	}

	for v := 0; v < n; v++ {
		if index[v] == -1 {
			strongconnect(v)
		}
	}
	return sccs
}

func (g *Graph) SCCCount() int { return len(g.SCCs()) }

// Diameter is the longest shortest path over all ordered pairs,
// treating edges as undirected for reachability. The second return is
// false when the graph is disconnected (or empty), in which case a
// whole-graph diameter is undefined.
func (g *Graph) Diameter() (int, bool) {
	n := len(g.ids)
	if n == 0 {
		return 0, false
	}

	undirected := make([][]int, n)
	for from, out := range g.adj {
		for _, to := range out {
			undirected[from] = append(undirected[from], to)
			undirected[to] = append(undirected[to], from)
		}
	}

	diameter := 0
	for src := 0; src < n; src++ {
		dist := g.bfs(undirected, src)
		for _, d := range dist {
			if d < 0 {
				return 0, false
			}
			if d > diameter {
				diameter = d
			}
		}
	}
	return diameter, true
}

func (g *Graph) bfs(adj [][]int, src int) []int {
	dist := make([]int, len(g.ids))
	for i := range dist {
		dist[i] = -1
	}
	dist[src] = 0
	queue := []int{src}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range adj[v] {
			if dist[w] < 0 {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
		}
	}
	return dist
}

// PageRank ranks statutes by reference importance. Dangling mass is
// redistributed uniformly. Iteration stops at maxIter or when the total
// change drops below eps.
func (g *Graph) PageRank(damping float64, maxIter int, eps float64) map[string]float64 {
	n := len(g.ids)
	if n == 0 {
		return map[string]float64{}
	}
	if damping <= 0 || damping >= 1 {
		damping = 0.85
	}
	if maxIter <= 0 {
		maxIter = 100
	}

	rank := make([]float64, n)
	for i := range rank {
		rank[i] = 1.0 / float64(n)
	}

	for iter := 0; iter < maxIter; iter++ {
		next := make([]float64, n)
		danglingMass := 0.0
		for v := range g.adj {
			if len(g.adj[v]) == 0 {
				danglingMass += rank[v]
				continue
			}
			share := rank[v] / float64(len(g.adj[v]))
			for _, w := range g.adj[v] {
				next[w] += share
			}
		}

		base := (1-damping)/float64(n) + damping*danglingMass/float64(n)
		change := 0.0
		for i := range next {
			next[i] = base + damping*next[i]
			change += abs(next[i] - rank[i])
		}
		rank = next
		if eps > 0 && change < eps {
			break
		}
	}

	out := make(map[string]float64, n)
	for i, id := range g.ids {
		out[id] = rank[i]
	}
	return out
}

// Betweenness computes node betweenness centrality with Brandes'
// algorithm, splitting credit across equal-length shortest paths.
func (g *Graph) Betweenness() map[string]float64 {
	n := len(g.ids)
	centrality := make([]float64, n)

	for s := 0; s < n; s++ {
		// single-source shortest paths with path counting
		var stack []int
		preds := make([][]int, n)
		sigma := make([]float64, n)
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		sigma[s] = 1
		dist[s] = 0
		queue := []int{s}

		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range g.adj[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		delta := make([]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				centrality[w] += delta[w]
			}
		}
	}

	out := make(map[string]float64, n)
	for i, id := range g.ids {
		out[id] = centrality[i]
	}
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
