package cover

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/limaJavier/vertexcover/pkg/graph"
	"github.com/limaJavier/vertexcover/pkg/sat"
	"github.com/samber/lo"
)

type satCoverer struct {
	solver        sat.SATSolver
	logger        logr.Logger
	matchingBound bool
}

// NewSatCoverer returns a coverer computing a minimum vertex cover through repeated SAT queries.
// When matchingBound is set the search starts from a matching-based lower bound instead of 1
func NewSatCoverer(solver sat.SATSolver, logger logr.Logger, matchingBound bool) Coverer {
	return &satCoverer{
		solver:        solver,
		logger:        logger,
		matchingBound: matchingBound,
	}
}

// Cover binary searches the smallest satisfiable size in [1, n-1]. A cover of size n always exists, so it is
// never queried: when no smaller size is satisfiable every vertex is returned
func (coverer *satCoverer) Cover(ctx context.Context, g *graph.Graph) (graph.Cover, error) {
	if !g.HasEdges() {
		return graph.Cover{}, nil
	}

	low, high := uint64(1), g.VertexCount()-1
	if coverer.matchingBound {
		bound, err := matchingLowerBound(g)
		if err != nil {
			return nil, fmt.Errorf("cannot compute matching lower bound: %w", err)
		}
		low = max(low, bound)
		coverer.logger.V(2).Info("matching lower bound", "bound", bound)
	}

	var result graph.Cover
	queries := 0
	for low <= high {
		// A single query cannot be interrupted, the context is only honored between queries
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		middle := low + (high-low)/2
		cover, satisfiable, err := coverer.coverOfSize(g, middle)
		queries++
		if err != nil {
			return nil, err
		}

		if satisfiable {
			result = cover
			high = middle - 1
		} else {
			low = middle + 1
		}
	}

	// This can only happen when every vertex has to be covered (e.g. self-loops on all vertices)
	if result == nil {
		result = allVertices(g)
	}

	coverer.logger.V(1).Info("minimum vertex cover found", "size", len(result), "queries", queries)
	return result, nil
}

// coverOfSize looks for a vertex cover with exactly size vertices, returned in ascending order
func (coverer *satCoverer) coverOfSize(g *graph.Graph, size uint64) (graph.Cover, bool, error) {
	satInstance, selectors := EncodeCoverOfSize(g, size)

	start := time.Now()
	solution, err := coverer.solver.Solve(satInstance)
	if err != nil {
		return nil, false, fmt.Errorf("cannot solve SAT instance for size %d: %w", size, err)
	}

	coverer.logger.V(2).Info("SAT query",
		"size", size,
		"variables", satInstance.Variables,
		"clauses", len(satInstance.Clauses),
		"satisfiable", solution != nil,
		"elapsed", time.Since(start),
	)

	if solution == nil { // Not satisfiable
		return nil, false, nil
	}

	// Iterate from the lowest vertex to the highest so the cover comes out sorted
	cover := lo.Filter(lo.RangeFrom(uint64(1), int(g.VertexCount())), func(vertex uint64, _ int) bool {
		return solution.Value(selectors[vertex])
	})
	return cover, true, nil
}
