package testutil

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/ProvinceRenamer/internal/core"
)

// ChainGraph builds 1-2-...-n with every province on plains.
func ChainGraph(n int) *core.Graph {
	edges := make([]core.Edge, 0, n)
	for i := 1; i < n; i++ {
		edges = append(edges, core.Edge{A: i, B: i + 1})
	}
	return core.NewGraph(nil, edges)
}

// TriangleGraph builds 1-2, 2-3, 1-3 with every province on plains.
func TriangleGraph() *core.Graph {
	return core.NewGraph(nil, []core.Edge{{A: 1, B: 2}, {A: 2, B: 3}, {A: 1, B: 3}})
}

// GridGraph builds a w x h grid with 4-neighbour adjacency. Province ids are
// 1-based in row-major order.
func GridGraph(w, h int, terrain map[int]core.Mask) *core.Graph {
	id := func(x, y int) int { return y*w + x + 1 }
	var edges []core.Edge
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x+1 < w {
				edges = append(edges, core.Edge{A: id(x, y), B: id(x+1, y)})
			}
			if y+1 < h {
				edges = append(edges, core.Edge{A: id(x, y), B: id(x, y+1)})
			}
		}
	}
	return core.NewGraph(terrain, edges)
}

// Candidate builds a candidate and fails the test on an invalid tag.
func Candidate(t *testing.T, name string, tags ...string) *core.Candidate {
	t.Helper()
	c, err := core.NewCandidate(name, tags)
	require.NoError(t, err)
	return c
}

// PlainsCandidates builds n candidates without requirements named Name1..NameN.
func PlainsCandidates(t *testing.T, n int) []*core.Candidate {
	t.Helper()
	out := make([]*core.Candidate, n)
	for i := range out {
		out[i] = Candidate(t, "Name"+strconv.Itoa(i+1))
	}
	return out
}
