package sat

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Exit-codes of 10 and 20 stand for satisfiable and unsatisfiable respectively
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

// interpretExitCode distinguishes a genuine execution failure from the conventional non-zero exit codes of SAT solvers
func interpretExitCode(cmd *exec.Cmd, err error) (unsatisfiable bool, execErr error) {
	if cmd.ProcessState == nil {
		return false, err
	}

	switch cmd.ProcessState.ExitCode() {
	case exitUnsatisfiable:
		return true, nil
	case exitSatisfiable:
		return false, nil
	}
	return false, err
}

// parseSolution collects the literals of every "v" line of a competition-format output
func parseSolution(solverOutput string) (SATSolution, error) {
	values := lo.Reduce(
		lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
			return len(line) > 0 && line[0] == 'v'
		}),
		func(values []string, line string, _ int) []string {
			return append(values, strings.Fields(line[1:])...)
		},
		[]string{},
	)
	if len(values) == 0 {
		return nil, errors.New("solver output has no value lines")
	}

	solution := make(SATSolution, 0, len(values))
	for _, valueStr := range values {
		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid literal in solver output: %w", err)
		}
		if value == 0 { // End of model
			break
		}
		solution = append(solution, value)
	}
	return solution, nil
}
