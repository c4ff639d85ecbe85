package qddpm

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Exact earth-mover distance for uniform marginals, solved as a
// min-cost max-flow over source -> rows -> cols -> sink. The uniform
// 1/m and 1/n marginals are integerized to n units per row and m
// units per col (mn units of total mass, each worth 1/(mn)), so the
// flow is integral and the optimum exact.

type flowEdge struct {
	to, rev int
	cap     int
	cost    float64
}

type flowGraph struct {
	adj [][]flowEdge
}

func newFlowGraph(nodes int) *flowGraph {
	return &flowGraph{adj: make([][]flowEdge, nodes)}
}

func (g *flowGraph) addEdge(u, v, cap int, cost float64) {
	g.adj[u] = append(g.adj[u], flowEdge{to: v, rev: len(g.adj[v]), cap: cap, cost: cost})
	g.adj[v] = append(g.adj[v], flowEdge{to: u, rev: len(g.adj[u]) - 1, cap: 0, cost: -cost})
}

// minCostFlow runs successive shortest paths (SPFA, since residual
// edges carry negative costs) until the sink is unreachable, and
// returns the total cost of the maximum flow.
func (g *flowGraph) minCostFlow(s, t int) float64 {
	total := 0.0
	nodes := len(g.adj)
	for {
		dist := make([]float64, nodes)
		prevNode := make([]int, nodes)
		prevEdge := make([]int, nodes)
		inQueue := make([]bool, nodes)
		for i := range dist {
			dist[i] = math.Inf(1)
			prevNode[i] = -1
		}
		dist[s] = 0
		queue := []int{s}
		inQueue[s] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			inQueue[u] = false
			for ei, e := range g.adj[u] {
				if e.cap > 0 && dist[u]+e.cost < dist[e.to]-1e-15 {
					dist[e.to] = dist[u] + e.cost
					prevNode[e.to] = u
					prevEdge[e.to] = ei
					if !inQueue[e.to] {
						queue = append(queue, e.to)
						inQueue[e.to] = true
					}
				}
			}
		}
		if math.IsInf(dist[t], 1) {
			return total
		}
		bottleneck := math.MaxInt
		for v := t; v != s; v = prevNode[v] {
			e := g.adj[prevNode[v]][prevEdge[v]]
			if e.cap < bottleneck {
				bottleneck = e.cap
			}
		}
		for v := t; v != s; v = prevNode[v] {
			e := &g.adj[prevNode[v]][prevEdge[v]]
			e.cap -= bottleneck
			g.adj[e.to][e.rev].cap += bottleneck
		}
		total += float64(bottleneck) * dist[t]
	}
}

// emd returns the optimal transport cost between uniform empirical
// distributions over the rows and columns of the cost matrix.
func emd(cost *mat.Dense) float64 {
	m, n := cost.Dims()
	src := 0
	sink := m + n + 1
	g := newFlowGraph(m + n + 2)
	for i := 0; i < m; i++ {
		g.addEdge(src, 1+i, n, 0)
	}
	for j := 0; j < n; j++ {
		g.addEdge(1+m+j, sink, m, 0)
	}
	capIJ := min(m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			g.addEdge(1+i, 1+m+j, capIJ, cost.At(i, j))
		}
	}
	return g.minCostFlow(src, sink) / float64(m*n)
}
