package cover

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/limaJavier/vertexcover/pkg/graph"
)

type randomEdgeCoverer struct {
	mutex  sync.Mutex
	random *rand.Rand
}

// NewRandomEdgeCoverer returns the approximation that repeatedly picks a random edge, takes both of its endpoints
// and throws away every edge attached to them. A nil random uses a randomly seeded generator
func NewRandomEdgeCoverer(random *rand.Rand) Coverer {
	if random == nil {
		random = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &randomEdgeCoverer{random: random}
}

func (coverer *randomEdgeCoverer) Cover(_ context.Context, g *graph.Graph) (graph.Cover, error) {
	if !g.HasEdges() {
		return graph.Cover{}, nil
	}

	adjacency := g.Adjacency()
	edges := newEdgeSet(g)
	cover := graph.Cover{}

	for edges.Len() > 0 {
		vertex1, vertex2 := edges.Pick(coverer.intN)

		cover = append(cover, vertex1)
		if vertex2 != vertex1 {
			cover = append(cover, vertex2)
		}

		for _, vertex := range []uint64{vertex1, vertex2} {
			for _, neighbor := range adjacency.Remove(vertex) {
				edges.Delete(vertex, neighbor)
				edges.Delete(neighbor, vertex)
			}
		}
	}

	slices.Sort(cover)
	return cover, nil
}

func (coverer *randomEdgeCoverer) intN(n int) int {
	coverer.mutex.Lock()
	defer coverer.mutex.Unlock()
	return coverer.random.IntN(n)
}

// edgeSet holds ordered vertex pairs with constant time uniform picking and deletion
type edgeSet struct {
	pairs   [][2]uint64
	indexes map[[2]uint64]int
}

// newEdgeSet tracks both directions of every edge, in ascending order so that seeded runs are reproducible
func newEdgeSet(g *graph.Graph) *edgeSet {
	set := &edgeSet{
		pairs:   make([][2]uint64, 0),
		indexes: make(map[[2]uint64]int),
	}
	for _, vertex := range g.IncidentVertices() {
		for _, neighbor := range g.Neighbors(vertex) {
			pair := [2]uint64{vertex, neighbor}
			set.indexes[pair] = len(set.pairs)
			set.pairs = append(set.pairs, pair)
		}
	}
	return set
}

func (set *edgeSet) Len() int {
	return len(set.pairs)
}

func (set *edgeSet) Pick(intN func(int) int) (uint64, uint64) {
	pair := set.pairs[intN(len(set.pairs))]
	return pair[0], pair[1]
}

func (set *edgeSet) Delete(vertex1, vertex2 uint64) {
	pair := [2]uint64{vertex1, vertex2}
	index, ok := set.indexes[pair]
	if !ok {
		return
	}

	// Swap with the last pair to keep the slice dense
	last := set.pairs[len(set.pairs)-1]
	set.pairs[index] = last
	set.indexes[last] = index
	set.pairs = set.pairs[:len(set.pairs)-1]
	delete(set.indexes, pair)
}
