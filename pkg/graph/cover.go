package graph

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var ErrInvalidCover = errors.New("invalid vertex cover")

// Cover is a strictly ascending list of vertices
type Cover []uint64

func (cover Cover) Size() int {
	return len(cover)
}

// String joins the vertices with commas, an empty cover yields an empty string
func (cover Cover) String() string {
	return strings.Join(lo.Map(cover, func(vertex uint64, _ int) string {
		return strconv.FormatUint(vertex, 10)
	}), ",")
}

func (cover Cover) Contains(vertex uint64) bool {
	_, found := slices.BinarySearch(cover, vertex)
	return found
}

// VerifyCover checks that cover is strictly ascending, in range, and touches every edge of the graph
func (graph *Graph) VerifyCover(cover Cover) error {
	for i, vertex := range cover {
		if vertex < 1 || vertex > graph.vertexCount {
			return fmt.Errorf("%w: vertex %d out of range [1, %d]", ErrInvalidCover, vertex, graph.vertexCount)
		}
		if i > 0 && cover[i-1] >= vertex {
			return fmt.Errorf("%w: vertices are not strictly ascending at position %d", ErrInvalidCover, i)
		}
	}

	for _, edge := range graph.Edges() {
		if !cover.Contains(edge[0]) && !cover.Contains(edge[1]) {
			return fmt.Errorf("%w: edge <%d,%d> is not covered", ErrInvalidCover, edge[0], edge[1])
		}
	}
	return nil
}

func (graph *Graph) IsCover(cover Cover) bool {
	return graph.VerifyCover(cover) == nil
}
