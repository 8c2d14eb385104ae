package sat

import (
	"fmt"
	"strings"
)

// SATSolution lists every variable of the instance as a signed literal:
// positive when the variable is assigned true, negative otherwise
type SATSolution []int64

type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

// NewVariable allocates a fresh variable and returns it as a positive literal
func (s *SAT) NewVariable() int64 {
	s.Variables++
	return int64(s.Variables)
}

func (s *SAT) AddClause(literals ...int64) {
	s.Clauses = append(s.Clauses, literals)
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// Value reports whether variable is assigned true in the solution
func (solution SATSolution) Value(variable int64) bool {
	if variable <= 0 || variable > int64(len(solution)) {
		return false
	}
	// Solvers emit literals in variable order, but fall back to a scan for those that do not
	if literal := solution[variable-1]; literal == variable || literal == -variable {
		return literal > 0
	}
	for _, literal := range solution {
		if literal == variable {
			return true
		} else if literal == -variable {
			return false
		}
	}
	return false
}

// Verify checks that the solution is contradiction-free and satisfies every clause of the instance
func Verify(satInstance SAT, satSolution SATSolution) bool {
	// Make sure there are no duplicates nor contradictions
	literals := make(map[int64]bool)
	for _, literal := range satSolution {
		if literals[literal] || literals[-literal] {
			return false
		}
		literals[literal] = true
	}

	// Check that all clauses are satisfied
	for _, clause := range satInstance.Clauses {
		satisfied := false
		for _, literal := range clause {
			if literals[literal] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}

	return true
}
