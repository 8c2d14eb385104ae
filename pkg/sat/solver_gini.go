package sat

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

type giniSolver struct{}

// NewGiniSolver returns an in-process solver backed by gini
func NewGiniSolver() SATSolver {
	return &giniSolver{}
}

func (s *giniSolver) Solve(sat SAT) (SATSolution, error) {
	g := gini.NewVc(int(sat.Variables), len(sat.Clauses))
	for _, clause := range sat.Clauses {
		for _, literal := range clause {
			g.Add(z.Dimacs2Lit(int(literal)))
		}
		g.Add(z.LitNull) // Terminate clause
	}

	// 1 stands for satisfiable, -1 for unsatisfiable and 0 for canceled
	if g.Solve() != 1 {
		return nil, nil
	}

	maxVar := g.MaxVar()
	solution := make(SATSolution, sat.Variables)
	for i := range sat.Variables {
		variable := int64(i + 1)
		if z.Var(variable) <= maxVar && g.Value(z.Var(variable).Pos()) {
			solution[i] = variable
		} else {
			solution[i] = -variable
		}
	}
	return solution, nil
}
