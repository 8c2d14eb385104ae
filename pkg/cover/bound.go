package cover

import (
	"github.com/limaJavier/vertexcover/pkg/graph"
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// matchingLowerBound returns a lower bound of the minimum vertex cover size.
// Every cover C of g yields a cover of size 2|C| of g's bipartite double cover, whose minimum cover equals its largest
// matching M (König's theorem); therefore |C| >= ceil(M/2)
func matchingLowerBound(g *graph.Graph) (uint64, error) {
	// Only vertices with at least one edge take part in a matching
	vertices := g.IncidentVertices()
	if len(vertices) == 0 {
		return 0, nil
	}

	verticesAny := lo.Map(vertices, func(vertex uint64, _ int) any { return vertex })
	neighbors := func(vertex1Any any, vertex2Any any) (bool, error) {
		return g.Adjacent(vertex1Any.(uint64), vertex2Any.(uint64)), nil
	}

	doubleCover, err := bipartitegraph.NewBipartiteGraph(verticesAny, verticesAny, neighbors)
	if err != nil {
		return 0, err
	}

	matching := uint64(len(doubleCover.LargestMatching()))
	return (matching + 1) / 2, nil
}
