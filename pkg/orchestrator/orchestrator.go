// Package orchestrator drives the line protocol: it pairs a vertex count with the next edge set, runs the exact
// and approximate strategies on the resulting graph concurrently, and renders their covers as a report.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/limaJavier/vertexcover/internal/metrics"
	"github.com/limaJavier/vertexcover/pkg/cover"
	"github.com/limaJavier/vertexcover/pkg/graph"
	"github.com/limaJavier/vertexcover/pkg/parser"
	"github.com/limaJavier/vertexcover/pkg/sat"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEdgesBeforeVertexCount     = errors.New("an edge set was given before any vertex count")
	ErrVertexCountAlreadyDeclared = errors.New("a vertex count was already given, an edge set is expected")
	ErrStrategyFailed             = errors.New("strategy failed")
)

type Orchestrator struct {
	timeout time.Duration
	exact   cover.Coverer
	approx1 cover.Coverer
	approx2 cover.Coverer
	logger  logr.Logger
	metrics *metrics.Metrics
	verify  bool

	// Serializes commands, so pendingVertexCount is only touched under it
	mutex              sync.Mutex
	pendingVertexCount uint64 // Zero while a vertex count is expected
}

func New(opts ...Option) *Orchestrator {
	orchestrator := &Orchestrator{
		timeout: DefaultTimeout,
		logger:  logr.Discard(),
	}
	for _, opt := range opts {
		opt(orchestrator)
	}

	if orchestrator.exact == nil {
		var solver sat.SATSolver = sat.NewGophersatSolver()
		if orchestrator.metrics != nil {
			solver = orchestrator.metrics.InstrumentSolver(solver)
		}
		orchestrator.exact = cover.NewSatCoverer(solver, orchestrator.logger.WithName("exact"), true)
	}
	if orchestrator.approx1 == nil {
		orchestrator.approx1 = cover.NewHighestDegreeCoverer()
	}
	if orchestrator.approx2 == nil {
		orchestrator.approx2 = cover.NewRandomEdgeCoverer(nil)
	}
	return orchestrator
}

// AcceptLine processes one input line and returns the report it produced, if any. Blank lines are ignored.
// A failing line leaves the orchestrator exactly as it was before the line
func (orchestrator *Orchestrator) AcceptLine(ctx context.Context, line string) (string, error) {
	line = strings.Trim(line, " ")
	if line == "" {
		return "", nil
	}

	command, err := parser.Parse(line)
	if err != nil {
		return "", err
	}

	switch command := command.(type) {
	case parser.VertexCountCommand:
		return "", orchestrator.DeclareVertexCount(command.Count)
	case parser.EdgesCommand:
		report, err := orchestrator.DeclareEdges(ctx, command.Edges)
		if err != nil {
			return "", err
		}
		return report.String(), nil
	default:
		return "", fmt.Errorf("unexpected command %T", command)
	}
}

func (orchestrator *Orchestrator) DeclareVertexCount(count uint64) error {
	orchestrator.mutex.Lock()
	defer orchestrator.mutex.Unlock()

	if orchestrator.pendingVertexCount != 0 {
		return ErrVertexCountAlreadyDeclared
	}
	if count < 2 {
		return fmt.Errorf("%w: %v", graph.ErrInvalidVertexCount, count)
	}

	orchestrator.pendingVertexCount = count
	return nil
}

// DeclareEdges builds the graph of the pending vertex count and solves it. The vertex count is consumed only
// when a full report is produced
func (orchestrator *Orchestrator) DeclareEdges(ctx context.Context, edges []graph.Edge) (Report, error) {
	orchestrator.mutex.Lock()
	defer orchestrator.mutex.Unlock()

	if orchestrator.pendingVertexCount == 0 {
		return Report{}, ErrEdgesBeforeVertexCount
	}

	g, err := graph.NewGraph(orchestrator.pendingVertexCount, edges)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", parser.ErrMalformed, err)
	}

	report, err := orchestrator.Solve(ctx, g)
	if err != nil {
		return Report{}, err
	}

	orchestrator.pendingVertexCount = 0
	orchestrator.logger.V(1).Info("graph solved", "vertices", g.VertexCount(), "stats", report.Stats())
	return report, nil
}

// Solve runs the three strategies on g concurrently. The approximations are always awaited, while the exact
// strategy is given up on after the timeout: its goroutine is left running and discards its own result
func (orchestrator *Orchestrator) Solve(ctx context.Context, g *graph.Graph) (Report, error) {
	report := Report{Durations: make(map[string]time.Duration, 3)}
	var durationsMutex sync.Mutex
	record := func(label string, elapsed time.Duration) {
		durationsMutex.Lock()
		defer durationsMutex.Unlock()
		report.Durations[label] = elapsed
	}

	slot := newExactSlot()
	go orchestrator.runExact(ctx, g, slot)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		cover, elapsed, err := orchestrator.run(groupCtx, Approx1Label, orchestrator.approx1, g)
		report.Approx1 = cover
		record(Approx1Label, elapsed)
		return err
	})
	group.Go(func() error {
		cover, elapsed, err := orchestrator.run(groupCtx, Approx2Label, orchestrator.approx2, g)
		report.Approx2 = cover
		record(Approx2Label, elapsed)
		return err
	})

	timer := time.NewTimer(orchestrator.timeout)
	defer timer.Stop()

	// groupCtx ends early when an approximation fails or the caller cancels, neither waits for the exact strategy
	var waitErr error
	select {
	case <-slot.done:
	case <-timer.C:
	case <-groupCtx.Done():
		waitErr = ctx.Err()
	}

	exact, exactErr, exactElapsed, captured := slot.collect()
	approxErr := group.Wait()

	switch {
	case approxErr != nil:
		return Report{}, approxErr
	case waitErr != nil && !captured:
		return Report{}, waitErr
	case captured && exactErr != nil:
		return Report{}, exactErr
	}

	if captured {
		report.Exact = exact
		report.Durations[ExactLabel] = exactElapsed
		orchestrator.observe(ExactLabel, exactElapsed, exact)
	} else {
		report.ExactTimedOut = true
		orchestrator.logger.Info("exact strategy timed out, leaving it behind", "timeout", orchestrator.timeout, "vertices", g.VertexCount())
		if orchestrator.metrics != nil {
			orchestrator.metrics.ObserveTimeout()
		}
	}

	orchestrator.observe(Approx1Label, report.Durations[Approx1Label], report.Approx1)
	orchestrator.observe(Approx2Label, report.Durations[Approx2Label], report.Approx2)
	return report, nil
}

func (orchestrator *Orchestrator) runExact(ctx context.Context, g *graph.Graph, slot *exactSlot) {
	cover, elapsed, err := orchestrator.run(ctx, ExactLabel, orchestrator.exact, g)
	if !slot.deliver(cover, err, elapsed) {
		orchestrator.logger.V(1).Info("discarding result of abandoned exact strategy", "elapsed", elapsed, "error", err)
	}
}

// run executes a single strategy, turning panics and invalid covers into errors
func (orchestrator *Orchestrator) run(ctx context.Context, label string, coverer cover.Coverer, g *graph.Graph) (result graph.Cover, elapsed time.Duration, err error) {
	start := time.Now()
	defer func() {
		elapsed = time.Since(start)
		if recovered := recover(); recovered != nil {
			result, err = nil, fmt.Errorf("%w: %v panicked: %v", ErrStrategyFailed, label, recovered)
		}
	}()

	result, err = coverer.Cover(ctx, g)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v: %w", ErrStrategyFailed, label, err)
	}

	if orchestrator.verify {
		if err := g.VerifyCover(result); err != nil {
			return nil, 0, fmt.Errorf("%w: %v: %w", ErrStrategyFailed, label, err)
		}
	}

	orchestrator.logger.V(1).Info("strategy finished", "strategy", label, "size", result.Size(), "elapsed", time.Since(start))
	return result, 0, nil
}

func (orchestrator *Orchestrator) observe(label string, elapsed time.Duration, cover graph.Cover) {
	if orchestrator.metrics != nil {
		orchestrator.metrics.ObserveStrategy(label, elapsed, cover.Size())
	}
}
