package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/limaJavier/vertexcover/internal/config"
	"github.com/limaJavier/vertexcover/pkg/sat"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var errInvalidModel = errors.New("solver returned a model violating the instance")

func newSatCommand() *cobra.Command {
	var configPath, solverName string

	command := &cobra.Command{
		Use:   "sat",
		Short: "Solve a DIMACS CNF instance read from the standard input",
		Long: `sat reads a DIMACS CNF instance, for example one written by the dimacs command, solves it
with the configured SAT solver and prints the outcome in competition format:
"s SATISFIABLE" followed by a "v" line holding the model, or "s UNSATISFIABLE".`,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			if command.Flags().Changed("solver") {
				cfg.Solver = solverName
			}

			solver, err := sat.NewSolver(cfg.Solver, cfg.SolverPaths)
			if err != nil {
				return err
			}
			instance, err := sat.ParseDIMACS(command.InOrStdin())
			if err != nil {
				return err
			}

			solution, err := solver.Solve(instance)
			if err != nil {
				return err
			}

			out := command.OutOrStdout()
			if solution == nil {
				_, err = fmt.Fprintln(out, "s UNSATISFIABLE")
				return err
			}
			if !sat.Verify(instance, solution) {
				return errInvalidModel
			}

			literals := lo.Map(solution, func(literal int64, _ int) string { return strconv.FormatInt(literal, 10) })
			_, err = fmt.Fprintf(out, "s SATISFIABLE\nv %v 0\n", strings.Join(literals, " "))
			return err
		},
	}

	command.Flags().StringVar(&configPath, "config", "", "Path to a JSON or YAML configuration file")
	command.Flags().StringVar(&solverName, "solver", config.DefaultSolver, fmt.Sprintf("SAT solver, one of: %v", strings.Join(sat.Names(), ", ")))
	return command
}
