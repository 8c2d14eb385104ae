package cover

import (
	"context"

	"github.com/limaJavier/vertexcover/pkg/graph"
)

// Coverer computes a vertex cover of a graph. Implementations never mutate the graph,
// so a single graph may be shared by several coverers running concurrently
type Coverer interface {
	Cover(ctx context.Context, g *graph.Graph) (graph.Cover, error)
}

// CovererFunc adapts an ordinary function to the Coverer interface
type CovererFunc func(ctx context.Context, g *graph.Graph) (graph.Cover, error)

func (f CovererFunc) Cover(ctx context.Context, g *graph.Graph) (graph.Cover, error) {
	return f(ctx, g)
}

func allVertices(g *graph.Graph) graph.Cover {
	cover := make(graph.Cover, 0, g.VertexCount())
	for vertex := uint64(1); vertex <= g.VertexCount(); vertex++ {
		cover = append(cover, vertex)
	}
	return cover
}
