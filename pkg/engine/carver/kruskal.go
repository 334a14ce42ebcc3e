package carver

import (
	"math/rand"

	"mazerunner/pkg/engine/world"
)

// disjointSet is a union-find forest over cell indices with union by rank
// and path compression
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	s := &disjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range s.parent {
		s.parent[i] = i
	}
	return s
}

func (s *disjointSet) find(i int) int {
	if s.parent[i] != i {
		s.parent[i] = s.find(s.parent[i])
	}
	return s.parent[i]
}

// union merges the sets holding a and b. Returns false if they were already one set.
func (s *disjointSet) union(a, b int) bool {
	x, y := s.find(a), s.find(b)
	if x == y {
		return false
	}
	switch {
	case s.rank[x] > s.rank[y]:
		s.parent[y] = x
	case s.rank[x] < s.rank[y]:
		s.parent[x] = y
	default:
		s.parent[y] = x
		s.rank[x]++
	}
	return true
}

type edge struct {
	a, b *world.Cell
}

// Kruskal opens walls in random order, skipping any wall whose two sides are
// already joined. Produces mazes with many short dead ends.
type Kruskal struct {
	edges  []edge
	next   int
	sets   *disjointSet
	index  map[*world.Cell]int
	joins  int
	target int
	last   *world.Cell
}

// NewKruskal creates a Kruskal carver over cells with a shuffled wall list
func NewKruskal(cells []*world.Cell, rng *rand.Rand) *Kruskal {
	k := &Kruskal{
		sets:  newDisjointSet(len(cells)),
		index: make(map[*world.Cell]int, len(cells)),
	}
	for i, c := range cells {
		k.index[c] = i
	}
	for _, c := range cells {
		for d := world.Direction(0); int(d) < c.Arity(); d++ {
			n := c.Neighbor(d)
			if n == nil {
				continue
			}
			// each wall once, from the lower index side
			if j, ok := k.index[n]; ok && k.index[c] < j {
				k.edges = append(k.edges, edge{a: c, b: n})
			}
		}
	}
	rng.Shuffle(len(k.edges), func(i, j int) {
		k.edges[i], k.edges[j] = k.edges[j], k.edges[i]
	})
	if len(cells) > 0 {
		k.target = len(cells) - 1
	}
	return k
}

// Step opens the next wall that joins two separate regions
func (k *Kruskal) Step() {
	for !k.IsFinished() {
		e := k.edges[k.next]
		k.next++
		if !k.sets.union(k.index[e.a], k.index[e.b]) {
			continue
		}
		mustConnect(e.a, e.b)
		k.joins++
		k.last = e.b
		return
	}
}

// IsFinished reports whether the maze is spanning or no walls are left
func (k *Kruskal) IsFinished() bool {
	return k.joins >= k.target || k.next >= len(k.edges)
}

// LastChanged returns the cell on the far side of the last opened wall
func (k *Kruskal) LastChanged() *world.Cell {
	if k.IsFinished() {
		return nil
	}
	return k.last
}
