package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/limaJavier/vertexcover/internal/config"
	"github.com/limaJavier/vertexcover/internal/metrics"
	"github.com/limaJavier/vertexcover/pkg/cover"
	"github.com/limaJavier/vertexcover/pkg/orchestrator"
	"github.com/limaJavier/vertexcover/pkg/sat"
	"github.com/spf13/cobra"
)

const maxLineLength = 64 * 1024 * 1024

type rootOptions struct {
	configPath     string
	timeoutSeconds int
	solver         string
	seed           uint64
	verbosity      int
	metricsAddress string
	noMatching     bool
	verify         bool
}

func newRootCommand() *cobra.Command {
	options := &rootOptions{}

	command := &cobra.Command{
		Use:   "vertexcover",
		Short: "Minimum vertex cover through SAT and two approximations",
		Long: `vertexcover reads commands from the standard input, one per line:

  V <count>              declares the vertex count of the next graph
  E {<a,b>,<c,d>,...}    gives its edges and prints the covers found

Every graph is solved by an exact SAT-based search (bounded by a timeout) and by
two approximations running concurrently. Erroneous lines are reported as
"Error: <message>" and the following lines are still processed.`,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, _ []string) error {
			cfg, err := options.config(command)
			if err != nil {
				return err
			}
			return run(command.Context(), cfg, options.verify, command.InOrStdin(), command.OutOrStdout())
		},
	}

	flags := command.Flags()
	flags.StringVar(&options.configPath, "config", "", "Path to a JSON or YAML configuration file")
	flags.IntVar(&options.timeoutSeconds, "timeout", config.DefaultTimeoutSeconds, "Seconds granted to the exact strategy on each graph")
	flags.StringVar(&options.solver, "solver", config.DefaultSolver, fmt.Sprintf("SAT solver of the exact strategy, one of: %v", strings.Join(sat.Names(), ", ")))
	flags.Uint64Var(&options.seed, "seed", 0, "Seed of the random-edge approximation, 0 picks a random one")
	flags.IntVarP(&options.verbosity, "verbosity", "v", 0, "Log verbosity written to the standard error")
	flags.StringVar(&options.metricsAddress, "metrics-address", "", "Address serving Prometheus metrics, disabled when empty")
	flags.BoolVar(&options.noMatching, "no-matching-bound", false, "Start the exact search from 1 instead of a matching lower bound")
	flags.BoolVar(&options.verify, "verify", false, "Check every cover against its graph before printing it")

	command.AddCommand(newDimacsCommand(), newSatCommand())
	return command
}

// config loads the configuration file, if any, and overrides it with the flags set explicitly
func (options *rootOptions) config(command *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if options.configPath != "" {
		var err error
		if cfg, err = config.Load(options.configPath); err != nil {
			return config.Config{}, err
		}
	}

	flags := command.Flags()
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = options.timeoutSeconds
	}
	if flags.Changed("solver") {
		cfg.Solver = options.solver
	}
	if flags.Changed("seed") {
		cfg.Seed = options.seed
	}
	if flags.Changed("verbosity") {
		cfg.Verbosity = options.verbosity
	}
	if flags.Changed("metrics-address") {
		cfg.MetricsAddress = options.metricsAddress
	}
	if flags.Changed("no-matching-bound") {
		cfg.MatchingBound = !options.noMatching
	}

	return cfg, cfg.Validate()
}

func newLogger(verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.New(log.New(os.Stderr, "", log.LstdFlags))
}

func run(ctx context.Context, cfg config.Config, verify bool, in io.Reader, out io.Writer) error {
	logger := newLogger(cfg.Verbosity)

	solver, err := sat.NewSolver(cfg.Solver, cfg.SolverPaths)
	if err != nil {
		return err
	}

	collectors := metrics.New()
	if cfg.MetricsAddress != "" {
		serveMetrics(cfg.MetricsAddress, collectors, logger)
	}

	var random *rand.Rand
	if cfg.Seed != 0 {
		random = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	driver := orchestrator.New(
		orchestrator.WithTimeout(cfg.Timeout()),
		orchestrator.WithExactCoverer(cover.NewSatCoverer(collectors.InstrumentSolver(solver), logger.WithName("exact"), cfg.MatchingBound)),
		orchestrator.WithApproximations(cover.NewHighestDegreeCoverer(), cover.NewRandomEdgeCoverer(random)),
		orchestrator.WithLogger(logger),
		orchestrator.WithMetrics(collectors),
		orchestrator.WithVerification(verify),
	)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		output, err := driver.AcceptLine(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprint(out, output)
	}

	// Exact strategies still running after a timeout are simply dropped when the process exits
	return scanner.Err()
}

func serveMetrics(address string, collectors *metrics.Metrics, logger logr.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collectors.Handler())
	server := &http.Server{Addr: address, Handler: mux}

	go func() {
		logger.Info("serving metrics", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err, "metrics server stopped")
		}
	}()
}
