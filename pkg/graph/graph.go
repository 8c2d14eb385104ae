package graph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

var (
	ErrInvalidVertexCount = errors.New("there should be at least 2 vertices")
	ErrVertexOutOfRange   = errors.New("vertex index out of range")
)

// Edge is an unordered pair of vertices, (v, v) is a self-loop
type Edge [2]uint64

// Graph is an immutable undirected graph over the vertices 1..VertexCount().
// It is safe for concurrent reads
type Graph struct {
	vertexCount uint64
	hasEdges    bool
	adjacency   Adjacency
}

// NewGraph builds a graph from a vertex count and a list of edges. Duplicated edges collapse
func NewGraph(vertexCount uint64, edges []Edge) (*Graph, error) {
	if vertexCount < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVertexCount, vertexCount)
	}

	// Isolated vertices have no entry at all, which keeps huge sparse graphs cheap
	adjacency := make(Adjacency)
	for _, edge := range edges {
		vertex1, vertex2 := edge[0], edge[1]
		if vertex1 < 1 || vertex1 > vertexCount || vertex2 < 1 || vertex2 > vertexCount {
			return nil, fmt.Errorf("%w: edge <%d,%d> with %d vertices", ErrVertexOutOfRange, vertex1, vertex2, vertexCount)
		}
		adjacency.add(vertex1, vertex2)
		adjacency.add(vertex2, vertex1)
	}

	return &Graph{
		vertexCount: vertexCount,
		hasEdges:    len(edges) > 0,
		adjacency:   adjacency,
	}, nil
}

func (graph *Graph) VertexCount() uint64 {
	return graph.vertexCount
}

// HasEdges reports whether the edge list supplied at construction was non-empty
func (graph *Graph) HasEdges() bool {
	return graph.hasEdges
}

// Neighbors returns the neighbors of vertex in ascending order; a self-looped vertex is its own neighbor
func (graph *Graph) Neighbors(vertex uint64) []uint64 {
	neighbors := lo.Keys(graph.adjacency[vertex])
	slices.Sort(neighbors)
	return neighbors
}

func (graph *Graph) Degree(vertex uint64) int {
	return graph.adjacency.Degree(vertex)
}

func (graph *Graph) Adjacent(vertex1, vertex2 uint64) bool {
	return graph.adjacency[vertex1][vertex2]
}

// IncidentVertices returns, in ascending order, the vertices with at least one edge
func (graph *Graph) IncidentVertices() []uint64 {
	vertices := lo.Keys(lo.PickBy(graph.adjacency, func(_ uint64, neighbors map[uint64]bool) bool {
		return len(neighbors) > 0
	}))
	slices.Sort(vertices)
	return vertices
}

// Edges returns every distinct edge once as (u, v) with u <= v, in ascending order
func (graph *Graph) Edges() []Edge {
	edges := make([]Edge, 0)
	for _, vertex := range graph.IncidentVertices() {
		for _, neighbor := range graph.Neighbors(vertex) {
			if neighbor >= vertex {
				edges = append(edges, Edge{vertex, neighbor})
			}
		}
	}
	return edges
}

// Adjacency returns a private copy of the adjacency structure which the caller may consume freely
func (graph *Graph) Adjacency() Adjacency {
	return graph.adjacency.Clone()
}
