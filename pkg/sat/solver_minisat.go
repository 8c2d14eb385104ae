package sat

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type minisatSolver struct {
	path string
}

func NewMinisatSolver(path string) SATSolver {
	return &minisatSolver{path: path}
}

func (solver *minisatSolver) Solve(sat SAT) (SATSolution, error) {
	dimacs := sat.ToDIMACS() // Transform SAT into DIMACS-CNF string format

	// Create a temporary file to hold the DIMACS content
	inputTempFile, err := os.CreateTemp("", "dimacs-*.cnf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(inputTempFile.Name()) // Ensure the file is removed after execution

	outputTempFile, err := os.CreateTemp("", "minisat_output-*.cnf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(outputTempFile.Name())
	defer outputTempFile.Close()

	// Write the DIMACS content to the temporary file
	if _, err := inputTempFile.WriteString(dimacs); err != nil {
		return nil, fmt.Errorf("failed to write DIMACS to temporary file: %w", err)
	}
	if err := inputTempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}

	cmd := exec.Command(solver.path, "-verb=0", inputTempFile.Name(), outputTempFile.Name())

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	if unsatisfiable, err := interpretExitCode(cmd, err); err != nil {
		return nil, fmt.Errorf("an error occurred during minisat execution: %w : %v", err, stderr.String())
	} else if unsatisfiable {
		return nil, nil
	}

	output, err := io.ReadAll(outputTempFile) // Read the output file
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}
	return solver.parseSolution(string(output))
}

// minisat writes "SAT" on the first line and the zero-terminated model on the second one
func (solver *minisatSolver) parseSolution(solverOutput string) (SATSolution, error) {
	lines := strings.Split(solverOutput, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "SAT" {
		return nil, fmt.Errorf("unexpected minisat output: %q", solverOutput)
	}

	var parseErr error
	solution := lo.FilterMap(strings.Fields(lines[1]), func(valueStr string, _ int) (int64, bool) {
		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			parseErr = fmt.Errorf("invalid literal in minisat output: %w", err)
			return 0, false
		}
		return value, value != 0
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return solution, nil
}
