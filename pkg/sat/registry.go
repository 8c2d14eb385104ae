package sat

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

const (
	Gophersat = "gophersat"
	Gini      = "gini"
	Kissat    = "kissat"
	Cadical   = "cadical"
	Minisat   = "minisat"
)

var ErrUnknownSolver = errors.New("unknown SAT solver")

var (
	inProcessSolvers = map[string]func() SATSolver{
		Gophersat: NewGophersatSolver,
		Gini:      NewGiniSolver,
	}
	externalSolvers = map[string]func(path string) SATSolver{
		Kissat:  NewKissatSolver,
		Cadical: NewCadicalSolver,
		Minisat: NewMinisatSolver,
	}
)

// Names returns every solver accepted by NewSolver in alphabetical order
func Names() []string {
	names := append(lo.Keys(inProcessSolvers), lo.Keys(externalSolvers)...)
	slices.Sort(names)
	return names
}

// NewSolver builds the solver registered under name. External solvers are looked up in paths,
// falling back to the solver's name so that it is resolved through $PATH
func NewSolver(name string, paths map[string]string) (SATSolver, error) {
	name = strings.ToLower(name)
	if constructor, ok := inProcessSolvers[name]; ok {
		return constructor(), nil
	}

	constructor, ok := externalSolvers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (allowed values are %v)", ErrUnknownSolver, name, Names())
	}
	path, ok := paths[name]
	if !ok || path == "" {
		path = name
	}
	return constructor(path), nil
}
