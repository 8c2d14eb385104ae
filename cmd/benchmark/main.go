package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/limaJavier/vertexcover/pkg/cover"
	"github.com/limaJavier/vertexcover/pkg/graph"
	"github.com/limaJavier/vertexcover/pkg/orchestrator"
	"github.com/limaJavier/vertexcover/pkg/sat"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var strategies = []string{orchestrator.ExactLabel, orchestrator.Approx1Label, orchestrator.Approx2Label}

type benchmarkOptions struct {
	minVertices uint64
	maxVertices uint64
	step        uint64
	probability float64
	runs        int
	timeout     time.Duration
	solvers     []string
	seed        uint64
	out         string
}

type GraphMetadata struct {
	Vertices    uint64
	Edges       int
	Probability float64
	Run         int
}

type BenchmarkResult struct {
	Solver   string
	Graph    GraphMetadata
	TimedOut bool
	Duration map[string]time.Duration
	Size     map[string]int
}

func main() {
	if err := newBenchmarkCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newBenchmarkCommand() *cobra.Command {
	options := &benchmarkOptions{}

	command := &cobra.Command{
		Use:          "benchmark",
		Short:        "Compare the exact and approximate vertex cover strategies on random graphs",
		SilenceUsage: true,
		RunE: func(command *cobra.Command, _ []string) error {
			if options.minVertices < 2 || options.maxVertices < options.minVertices || options.step == 0 {
				return fmt.Errorf("invalid vertex range [%d, %d] with step %d", options.minVertices, options.maxVertices, options.step)
			}

			results, err := benchmark(command.Context(), options, command.ErrOrStderr())
			if err != nil {
				return err
			}

			out := command.OutOrStdout()
			if options.out != "" {
				file, err := os.Create(options.out)
				if err != nil {
					return fmt.Errorf("cannot create CSV file: %w", err)
				}
				defer file.Close()
				out = file
			}
			return toCsv(out, results)
		},
	}

	flags := command.Flags()
	flags.Uint64Var(&options.minVertices, "min-vertices", 5, "Vertex count of the smallest graphs")
	flags.Uint64Var(&options.maxVertices, "max-vertices", 30, "Vertex count of the largest graphs")
	flags.Uint64Var(&options.step, "step", 5, "Vertex count increment")
	flags.Float64Var(&options.probability, "probability", 0.3, "Probability of each edge")
	flags.IntVar(&options.runs, "runs", 3, "Random graphs per vertex count")
	flags.DurationVar(&options.timeout, "timeout", 10*time.Second, "Budget of the exact strategy on each graph")
	flags.StringSliceVar(&options.solvers, "solvers", []string{sat.Gophersat, sat.Gini}, "SAT solvers backing the exact strategy")
	flags.Uint64Var(&options.seed, "seed", 1, "Seed of the graph generator and the random-edge approximation")
	flags.StringVar(&options.out, "out", "", "Path of the CSV file, the standard output when empty")
	return command
}

func benchmark(ctx context.Context, options *benchmarkOptions, progress io.Writer) ([]BenchmarkResult, error) {
	results := make([]BenchmarkResult, 0)

	for _, solverName := range options.solvers {
		solver, err := sat.NewSolver(solverName, nil)
		if err != nil {
			return nil, err
		}

		// Every solver sees the same sequence of graphs
		random := rand.New(rand.NewPCG(options.seed, options.seed))
		driver := orchestrator.New(
			orchestrator.WithTimeout(options.timeout),
			orchestrator.WithExactCoverer(cover.NewSatCoverer(solver, logr.Discard(), true)),
			orchestrator.WithApproximations(cover.NewHighestDegreeCoverer(), cover.NewRandomEdgeCoverer(rand.New(rand.NewPCG(options.seed, 0)))),
		)

		for vertices := options.minVertices; vertices <= options.maxVertices; vertices += options.step {
			for run := range options.runs {
				fmt.Fprintf(progress, "Benchmarking solver \"%v\" with %d vertices (run %d)\n", solverName, vertices, run+1)

				g := generateGraph(random, vertices, options.probability)
				report, err := driver.Solve(ctx, g)
				if err != nil {
					return nil, fmt.Errorf("cannot solve graph with %d vertices: %w", vertices, err)
				}

				results = append(results, BenchmarkResult{
					Solver: solverName,
					Graph: GraphMetadata{
						Vertices:    vertices,
						Edges:       len(g.Edges()),
						Probability: options.probability,
						Run:         run,
					},
					TimedOut: report.ExactTimedOut,
					Duration: report.Durations,
					Size: map[string]int{
						orchestrator.ExactLabel:   report.Exact.Size(),
						orchestrator.Approx1Label: report.Approx1.Size(),
						orchestrator.Approx2Label: report.Approx2.Size(),
					},
				})
			}
		}
	}

	return results, nil
}

// generateGraph draws every loop-free edge independently with the given probability
func generateGraph(random *rand.Rand, vertices uint64, probability float64) *graph.Graph {
	edges := make([]graph.Edge, 0)
	for u := uint64(1); u <= vertices; u++ {
		for v := u + 1; v <= vertices; v++ {
			if random.Float64() < probability {
				edges = append(edges, graph.Edge{u, v})
			}
		}
	}
	return lo.Must(graph.NewGraph(vertices, edges))
}

func toCsv(out io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(out)

	header := []string{"Solver", "Vertices", "Edges", "Probability", "Run", "TimedOut"}
	header = append(header, lo.Map(strategies, func(strategy string, _ int) string { return strategy + "(us)" })...)
	header = append(header, lo.Map(strategies, func(strategy string, _ int) string { return strategy + "(size)" })...)
	header = append(header, orchestrator.Approx1Label+"(ratio)", orchestrator.Approx2Label+"(ratio)")
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Solver,
			fmt.Sprintf("%d", result.Graph.Vertices),
			fmt.Sprintf("%d", result.Graph.Edges),
			fmt.Sprintf("%g", result.Graph.Probability),
			fmt.Sprintf("%d", result.Graph.Run),
			fmt.Sprintf("%v", result.TimedOut),
		}
		for _, strategy := range strategies {
			duration, ok := result.Duration[strategy]
			record = append(record, lo.Ternary(ok, fmt.Sprintf("%d", duration.Microseconds()), ""))
		}
		for _, strategy := range strategies {
			timedOut := result.TimedOut && strategy == orchestrator.ExactLabel
			record = append(record, lo.Ternary(timedOut, "", fmt.Sprintf("%d", result.Size[strategy])))
		}
		record = append(record, ratio(result, orchestrator.Approx1Label), ratio(result, orchestrator.Approx2Label))

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ratio of an approximation against the exact cover, empty when undefined
func ratio(result BenchmarkResult, strategy string) string {
	exact := result.Size[orchestrator.ExactLabel]
	if result.TimedOut || exact == 0 {
		return ""
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", float64(result.Size[strategy])/float64(exact)), "0"), ".")
}
