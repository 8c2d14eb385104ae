package cover

import (
	"context"
	"slices"

	"github.com/limaJavier/vertexcover/pkg/graph"
)

type highestDegreeCoverer struct{}

// NewHighestDegreeCoverer returns the greedy approximation that repeatedly takes a vertex of highest degree
// and throws away its edges. Ties go to the lowest vertex, so the result is deterministic
func NewHighestDegreeCoverer() Coverer {
	return &highestDegreeCoverer{}
}

func (coverer *highestDegreeCoverer) Cover(_ context.Context, g *graph.Graph) (graph.Cover, error) {
	if !g.HasEdges() {
		return graph.Cover{}, nil
	}

	adjacency := g.Adjacency()
	vertices := g.IncidentVertices() // Ascending, isolated vertices can never be picked
	cover := graph.Cover{}

	for !adjacency.Empty() {
		var maxDegree int
		var maxDegreeVertex uint64
		for _, vertex := range vertices {
			if degree := adjacency.Degree(vertex); degree > maxDegree {
				maxDegree = degree
				maxDegreeVertex = vertex
			}
		}

		cover = append(cover, maxDegreeVertex)
		adjacency.Remove(maxDegreeVertex)
	}

	slices.Sort(cover)
	return cover, nil
}
