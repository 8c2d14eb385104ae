package sat

import (
	"github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
)

type gophersatSolver struct{}

// NewGophersatSolver returns an in-process CDCL solver, no external executable is required
func NewGophersatSolver() SATSolver {
	return &gophersatSolver{}
}

func (s *gophersatSolver) Solve(sat SAT) (SATSolution, error) {
	clauses := lo.Map(sat.Clauses, func(clause []int64, _ int) []int {
		return lo.Map(clause, func(literal int64, _ int) int { return int(literal) })
	})

	gopher := solver.New(solver.ParseSlice(clauses))
	if gopher.Solve() != solver.Sat {
		return nil, nil
	}

	// The model only covers variables that occur in some clause, any other variable is unconstrained
	model := gopher.Model()
	solution := make(SATSolution, sat.Variables)
	for i := range sat.Variables {
		variable := int64(i + 1)
		if i < uint64(len(model)) && model[i] {
			solution[i] = variable
		} else {
			solution[i] = -variable
		}
	}
	return solution, nil
}
