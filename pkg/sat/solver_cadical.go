package sat

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

type cadicalSolver struct {
	path string
}

func NewCadicalSolver(path string) SATSolver {
	return &cadicalSolver{path: path}
}

func (solver *cadicalSolver) Solve(sat SAT) (SATSolution, error) {
	dimacs := sat.ToDIMACS()

	cmd := exec.Command(solver.path, "-q")
	cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into cadical's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if unsatisfiable, err := interpretExitCode(cmd, err); err != nil {
		return nil, fmt.Errorf("an error occurred during cadical execution: %w : %v", err, stderr.String())
	} else if unsatisfiable {
		return nil, nil
	}

	return parseSolution(stdOut.String())
}
