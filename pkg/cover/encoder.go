package cover

import (
	"github.com/limaJavier/vertexcover/pkg/graph"
	"github.com/limaJavier/vertexcover/pkg/sat"
)

// EncodeCoverOfSize builds a fresh SAT instance whose models are exactly the vertex covers of g with size vertices.
// Variables 1..n are the selectors (selectors[v] is true iff v belongs to the cover); the count of selected vertices is
// constrained through a totalizer, a balanced tree of unary adders (Bailleux & Boufkhad, 2003)
func EncodeCoverOfSize(g *graph.Graph, size uint64) (satInstance sat.SAT, selectors []int64) {
	vertices := g.VertexCount()

	//** Selector variables, index 0 is unused so vertices keep their own index
	selectors = make([]int64, vertices+1)
	for vertex := uint64(1); vertex <= vertices; vertex++ {
		selectors[vertex] = satInstance.NewVariable()
	}

	//** Cardinality constraint
	linking := freshLiterals(&satInstance, int(vertices)+2)
	appendSummationClauses(&satInstance, linking, selectors, 1, vertices)

	// Pin the root's unary value to size
	for i := uint64(1); i <= size; i++ {
		satInstance.AddClause(linking[i])
	}
	for i := size + 1; i < uint64(len(linking))-1; i++ {
		satInstance.AddClause(-linking[i])
	}

	//** Edge constraints
	for _, edge := range g.Edges() {
		if edge[0] == edge[1] { // A self-loop forces its vertex into the cover
			satInstance.AddClause(selectors[edge[0]])
		} else {
			satInstance.AddClause(selectors[edge[0]], selectors[edge[1]])
		}
	}

	return satInstance, selectors
}

// appendSummationClauses constrains linking to hold, in unary, the number of true selectors within [left, right].
// linking[0] is forced true and linking[len-1] forced false, in between linking[i] is true iff at least i selectors are true
func appendSummationClauses(satInstance *sat.SAT, linking, selectors []int64, left, right uint64) {
	satInstance.AddClause(linking[0])
	satInstance.AddClause(-linking[len(linking)-1])

	if left == right {
		return
	}

	// Split into [left, middle] and [middle+1, right] so that linking = leftLinking + rightLinking
	middle := (left + right) / 2
	leftLinking := childLinking(satInstance, selectors, left, middle)
	rightLinking := childLinking(satInstance, selectors, middle+1, right)

	for sum := 0; sum <= len(linking)-2; sum++ {
		for a := 0; a <= len(leftLinking)-2; a++ {
			b := sum - a
			if b < 0 || b > len(rightLinking)-2 {
				continue
			}
			// left >= a ∧ right >= b → total >= sum
			satInstance.AddClause(-leftLinking[a], -rightLinking[b], linking[sum])
			// left < a+1 ∧ right < b+1 → total < sum+1
			satInstance.AddClause(leftLinking[a+1], rightLinking[b+1], -linking[sum+1])
		}
	}

	appendSummationClauses(satInstance, leftLinking, selectors, left, middle)
	appendSummationClauses(satInstance, rightLinking, selectors, middle+1, right)
}

// childLinking allocates the linking literals of the range [left, right]. A leaf reuses its selector as the only counting bit
func childLinking(satInstance *sat.SAT, selectors []int64, left, right uint64) []int64 {
	linking := make([]int64, 0, right-left+3)
	linking = append(linking, satInstance.NewVariable())
	if left == right {
		linking = append(linking, selectors[left])
	} else {
		linking = append(linking, freshLiterals(satInstance, int(right-left+1))...)
	}
	return append(linking, satInstance.NewVariable())
}

func freshLiterals(satInstance *sat.SAT, count int) []int64 {
	literals := make([]int64, count)
	for i := range literals {
		literals[i] = satInstance.NewVariable()
	}
	return literals
}
