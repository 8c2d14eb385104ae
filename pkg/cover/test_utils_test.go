package cover

import (
	"math/bits"
	"math/rand/v2"

	"github.com/limaJavier/vertexcover/pkg/graph"
)

// generateGraph builds a random graph over vertices vertices where each pair is an edge with the given probability
func generateGraph(random *rand.Rand, vertices uint64, probability float64, selfLoops bool) *graph.Graph {
	edges := make([]graph.Edge, 0)
	for vertex1 := uint64(1); vertex1 <= vertices; vertex1++ {
		for vertex2 := vertex1; vertex2 <= vertices; vertex2++ {
			if vertex1 == vertex2 && !selfLoops {
				continue
			}
			if random.Float64() < probability {
				edges = append(edges, graph.Edge{vertex1, vertex2})
			}
		}
	}

	g, err := graph.NewGraph(vertices, edges)
	if err != nil {
		panic(err)
	}
	return g
}

// bruteForceMinimum enumerates every subset of vertices and returns the size of the smallest cover
func bruteForceMinimum(g *graph.Graph) int {
	vertices := g.VertexCount()
	edges := g.Edges()
	best := int(vertices)

	for mask := uint64(0); mask < 1<<vertices; mask++ {
		size := bits.OnesCount64(mask)
		if size >= best {
			continue
		}

		covered := true
		for _, edge := range edges {
			if mask&(1<<(edge[0]-1)) == 0 && mask&(1<<(edge[1]-1)) == 0 {
				covered = false
				break
			}
		}
		if covered {
			best = size
		}
	}
	return best
}

func mustGraph(vertices uint64, edges ...graph.Edge) *graph.Graph {
	g, err := graph.NewGraph(vertices, edges)
	if err != nil {
		panic(err)
	}
	return g
}
