package graph

// Adjacency maps every vertex to the set of its neighbors. It is symmetric: v ∈ a[u] ⇔ u ∈ a[v]
type Adjacency map[uint64]map[uint64]bool

func (adjacency Adjacency) Clone() Adjacency {
	clone := make(Adjacency, len(adjacency))
	for vertex, neighbors := range adjacency {
		clone[vertex] = make(map[uint64]bool, len(neighbors))
		for neighbor := range neighbors {
			clone[vertex][neighbor] = true
		}
	}
	return clone
}

func (adjacency Adjacency) add(vertex, neighbor uint64) {
	if _, ok := adjacency[vertex]; !ok {
		adjacency[vertex] = make(map[uint64]bool)
	}
	adjacency[vertex][neighbor] = true
}

func (adjacency Adjacency) Degree(vertex uint64) int {
	return len(adjacency[vertex])
}

// Remove drops every edge incident to vertex and returns the affected neighbors
func (adjacency Adjacency) Remove(vertex uint64) []uint64 {
	neighbors := make([]uint64, 0, len(adjacency[vertex]))
	for neighbor := range adjacency[vertex] {
		delete(adjacency[neighbor], vertex)
		neighbors = append(neighbors, neighbor)
	}
	clear(adjacency[vertex])
	return neighbors
}

// Empty reports whether no edge is left
func (adjacency Adjacency) Empty() bool {
	for _, neighbors := range adjacency {
		if len(neighbors) > 0 {
			return false
		}
	}
	return true
}
