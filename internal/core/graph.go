package core

import (
	"container/heap"
	"fmt"
)

// Edge is an undirected neighbour record between two provinces.
type Edge struct {
	A, B int
}

// Graph holds per-province terrain and the undirected adjacency between
// provinces. Adjacency is fixed after construction, so distances are memoised
// for the lifetime of the graph.
type Graph struct {
	terrain   map[int]Mask
	adjacency map[int][]int
	order     []int
	cache     *DistanceCache
}

// NewGraph builds a graph from terrain records and neighbour records. An edge
// naming a province without a terrain record still creates its adjacency
// entry; its terrain reads as plains. Provinces are enumerated in the order
// they first appear in edges.
func NewGraph(terrain map[int]Mask, edges []Edge) *Graph {
	g := &Graph{
		terrain:   make(map[int]Mask, len(terrain)),
		adjacency: make(map[int][]int),
		cache:     NewDistanceCache(),
	}
	for id, m := range terrain {
		g.terrain[id] = m
	}
	for _, e := range edges {
		g.touch(e.A)
		g.touch(e.B)
		g.adjacency[e.A] = append(g.adjacency[e.A], e.B)
		g.adjacency[e.B] = append(g.adjacency[e.B], e.A)
	}
	return g
}

func (g *Graph) touch(id int) {
	if _, ok := g.adjacency[id]; !ok {
		g.adjacency[id] = nil
		g.order = append(g.order, id)
	}
}

// Provinces returns every province with an adjacency entry, in enumeration
// order. Provinces that only carry a terrain record are not included.
func (g *Graph) Provinces() []int {
	out := make([]int, len(g.order))
	copy(out, g.order)
	return out
}

func (g *Graph) Len() int { return len(g.order) }

func (g *Graph) HasProvince(id int) bool {
	_, ok := g.adjacency[id]
	return ok
}

// Terrain returns the province's mask, plains when no terrain record exists.
func (g *Graph) Terrain(id int) Mask { return g.terrain[id] }

// Neighbours returns the province's neighbours as listed in the edge records.
// A pair listed twice appears twice.
func (g *Graph) Neighbours(id int) []int {
	n := g.adjacency[id]
	out := make([]int, len(n))
	copy(out, n)
	return out
}

// NeighbourTerrain returns the terrain masks of a province's neighbours.
func (g *Graph) NeighbourTerrain(id int) []Mask {
	n := g.adjacency[id]
	out := make([]Mask, len(n))
	for i, nb := range n {
		out[i] = g.terrain[nb]
	}
	return out
}

// Cache exposes the graph's distance cache.
func (g *Graph) Cache() *DistanceCache { return g.cache }

// Distance returns the number of edges on the shortest path between a and b.
// Results are cached for both orderings of the pair. A *NoPathError is returned
// when b cannot be reached from a, and ErrUnknownProvince when either id has
// no adjacency entry.
func (g *Graph) Distance(a, b int) (int, error) {
	if d, ok := g.cache.Get(a, b); ok {
		return d, nil
	}
	for _, id := range []int{a, b} {
		if !g.HasProvince(id) {
			return 0, fmt.Errorf("province %d: %w", id, ErrUnknownProvince)
		}
	}
	d, err := g.search(a, b)
	if err != nil {
		return 0, err
	}
	g.cache.Put(a, b, d)
	return d, nil
}

// search runs Dijkstra with unit edge weights. Among frontier entries of
// equal distance the lower province id is expanded first. The search stops
// as soon as the target is taken off the frontier.
func (g *Graph) search(from, to int) (int, error) {
	dist := map[int]int{from: 0}
	visited := make(map[int]bool, len(g.order))
	frontier := &distanceQueue{{id: from, dist: 0}}

	for frontier.Len() > 0 {
		cur := heap.Pop(frontier).(queueItem)
		if visited[cur.id] {
			continue
		}
		if cur.id == to {
			return cur.dist, nil
		}
		visited[cur.id] = true

		for _, nb := range g.adjacency[cur.id] {
			if visited[nb] {
				continue
			}
			next := cur.dist + 1
			if known, ok := dist[nb]; !ok || next < known {
				dist[nb] = next
				heap.Push(frontier, queueItem{id: nb, dist: next})
			}
		}
	}
	return 0, &NoPathError{From: from, To: to}
}

type queueItem struct {
	id   int
	dist int
}

type distanceQueue []queueItem

func (q distanceQueue) Len() int { return len(q) }
func (q distanceQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].id < q[j].id
}
func (q distanceQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *distanceQueue) Push(x any)   { *q = append(*q, x.(queueItem)) }
func (q *distanceQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// DistanceCache memoises hop distances by unordered province pair.
type DistanceCache struct {
	entries map[[2]int]int
}

func NewDistanceCache() *DistanceCache {
	return &DistanceCache{entries: make(map[[2]int]int)}
}

func (c *DistanceCache) Get(a, b int) (int, bool) {
	d, ok := c.entries[[2]int{a, b}]
	return d, ok
}

// Put stores d under both (a, b) and (b, a). An existing entry is kept.
func (c *DistanceCache) Put(a, b, d int) {
	if _, ok := c.entries[[2]int{a, b}]; ok {
		return
	}
	c.entries[[2]int{a, b}] = d
	c.entries[[2]int{b, a}] = d
}

// Len returns the number of stored orderings (two per distinct pair, one for a==b).
func (c *DistanceCache) Len() int { return len(c.entries) }
