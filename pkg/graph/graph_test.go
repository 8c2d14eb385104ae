package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraph(t *testing.T) {
	//** Arrange
	edges := []Edge{{1, 5}, {5, 2}, {1, 4}, {4, 5}, {4, 3}, {2, 4}}

	//** Act
	graph, err := NewGraph(5, edges)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, uint64(5), graph.VertexCount())
	assert.True(t, graph.HasEdges())
	assert.Equal(t, []uint64{1, 2, 3, 5}, graph.Neighbors(4))
	assert.Equal(t, 4, graph.Degree(4))
	assert.Equal(t, 1, graph.Degree(3))
	assert.True(t, graph.Adjacent(5, 1))
	assert.True(t, graph.Adjacent(1, 5))
	assert.False(t, graph.Adjacent(1, 2))
	assert.Equal(t, []Edge{{1, 4}, {1, 5}, {2, 4}, {2, 5}, {3, 4}, {4, 5}}, graph.Edges())
}

func TestNewGraphDuplicatesCollapse(t *testing.T) {
	graph1, err := NewGraph(2, []Edge{{1, 2}, {1, 2}, {2, 1}})
	require.NoError(t, err)
	graph2, err := NewGraph(2, []Edge{{1, 2}})
	require.NoError(t, err)

	assert.Equal(t, graph2.Edges(), graph1.Edges())
	assert.Equal(t, 1, graph1.Degree(1))
	assert.Equal(t, 1, graph1.Degree(2))
}

func TestNewGraphSelfLoop(t *testing.T) {
	graph, err := NewGraph(3, []Edge{{2, 2}})
	require.NoError(t, err)

	assert.True(t, graph.Adjacent(2, 2))
	assert.Equal(t, []uint64{2}, graph.Neighbors(2))
	assert.Equal(t, []Edge{{2, 2}}, graph.Edges())
	assert.False(t, graph.IsCover(Cover{1, 3}))
	assert.True(t, graph.IsCover(Cover{2}))
}

func TestNewGraphWithoutEdges(t *testing.T) {
	graph, err := NewGraph(2, nil)
	require.NoError(t, err)

	assert.False(t, graph.HasEdges())
	assert.Empty(t, graph.Edges())
	assert.True(t, graph.IsCover(Cover{}))
}

func TestNewGraphErrors(t *testing.T) {
	_, err := NewGraph(1, nil)
	assert.ErrorIs(t, err, ErrInvalidVertexCount)

	_, err = NewGraph(0, nil)
	assert.ErrorIs(t, err, ErrInvalidVertexCount)

	_, err = NewGraph(5, []Edge{{2, 10}})
	assert.ErrorIs(t, err, ErrVertexOutOfRange)

	_, err = NewGraph(5, []Edge{{0, 1}})
	assert.ErrorIs(t, err, ErrVertexOutOfRange)
}

func TestAdjacencyIsPrivateCopy(t *testing.T) {
	graph, err := NewGraph(3, []Edge{{1, 2}, {2, 3}})
	require.NoError(t, err)

	//** Act
	adjacency := graph.Adjacency()
	neighbors := adjacency.Remove(2)

	//** Assert
	assert.ElementsMatch(t, []uint64{1, 3}, neighbors)
	assert.True(t, adjacency.Empty())
	assert.Equal(t, 0, adjacency.Degree(1))
	// The graph itself is untouched
	assert.Equal(t, 2, graph.Degree(2))
	assert.True(t, graph.Adjacent(1, 2))
}

func TestAdjacencyRemoveSelfLoop(t *testing.T) {
	graph, err := NewGraph(2, []Edge{{1, 1}, {1, 2}})
	require.NoError(t, err)

	adjacency := graph.Adjacency()
	adjacency.Remove(1)

	assert.True(t, adjacency.Empty())
}

func TestIncidentVertices(t *testing.T) {
	graph, err := NewGraph(123456789, []Edge{{9, 3}, {3, 3}, {100, 9}})
	require.NoError(t, err)

	assert.Equal(t, []uint64{3, 9, 100}, graph.IncidentVertices())
	assert.Equal(t, []Edge{{3, 3}, {3, 9}, {9, 100}}, graph.Edges())
	assert.Equal(t, 0, graph.Degree(5))
}
