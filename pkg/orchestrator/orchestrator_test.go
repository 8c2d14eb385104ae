package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/limaJavier/vertexcover/internal/metrics"
	"github.com/limaJavier/vertexcover/pkg/cover"
	"github.com/limaJavier/vertexcover/pkg/graph"
	"github.com/limaJavier/vertexcover/pkg/parser"
	"github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptLine(t *testing.T) {
	//** Arrange
	orchestrator := New(WithVerification(true))
	ctx := context.Background()

	//** Act
	output1, err1 := orchestrator.AcceptLine(ctx, "V 5")
	output2, err2 := orchestrator.AcceptLine(ctx, "E {<1,5>,<5,2>,<1,4>,<4,5>,<4,3>,<2,4>}")

	//** Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Empty(t, output1)

	lines := strings.Split(output2, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "CNF-SAT-VC: 4,5", lines[0])
	assert.Equal(t, "APPROX-VC-1: 4,5", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "APPROX-VC-2: "))
	assert.Empty(t, lines[3])
}

func TestAcceptLineWithoutEdges(t *testing.T) {
	orchestrator := New()
	ctx := context.Background()

	_, err := orchestrator.AcceptLine(ctx, "V 2")
	require.NoError(t, err)
	output, err := orchestrator.AcceptLine(ctx, "E {}")
	require.NoError(t, err)

	assert.Equal(t, "CNF-SAT-VC: \nAPPROX-VC-1: \nAPPROX-VC-2: \n", output)
}

func TestAcceptLineIgnoresBlankLines(t *testing.T) {
	orchestrator := New()
	ctx := context.Background()

	for _, line := range []string{"", " ", "    "} {
		output, err := orchestrator.AcceptLine(ctx, line)
		assert.NoError(t, err)
		assert.Empty(t, output)
	}

	// Surrounding spaces are trimmed
	_, err := orchestrator.AcceptLine(ctx, "  V 3  ")
	require.NoError(t, err)
	output, err := orchestrator.AcceptLine(ctx, " E {<1,2>} ")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output, "CNF-SAT-VC: "))
}

func TestAcceptLineSequencing(t *testing.T) {
	ctx := context.Background()

	t.Run("Edges before vertex count", func(t *testing.T) {
		orchestrator := New()

		_, err := orchestrator.AcceptLine(ctx, "E {<1,2>}")

		assert.ErrorIs(t, err, ErrEdgesBeforeVertexCount)
	})

	t.Run("Vertex count twice", func(t *testing.T) {
		orchestrator := New()

		_, err := orchestrator.AcceptLine(ctx, "V 3")
		require.NoError(t, err)
		_, err = orchestrator.AcceptLine(ctx, "V 4")
		assert.ErrorIs(t, err, ErrVertexCountAlreadyDeclared)

		// The first count is still pending
		output, err := orchestrator.AcceptLine(ctx, "E {<3,2>}")
		require.NoError(t, err)
		assert.NotEmpty(t, output)
	})

	t.Run("Errors leave the state unchanged", func(t *testing.T) {
		orchestrator := New()

		_, err := orchestrator.AcceptLine(ctx, "V 3")
		require.NoError(t, err)

		_, err = orchestrator.AcceptLine(ctx, "E {<1,4>}")
		assert.ErrorIs(t, err, parser.ErrMalformed)
		assert.ErrorIs(t, err, graph.ErrVertexOutOfRange)

		_, err = orchestrator.AcceptLine(ctx, "E {<1,2>")
		assert.ErrorIs(t, err, parser.ErrMalformed)

		output, err := orchestrator.AcceptLine(ctx, "E {<1,2>,<2,3>}")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(output, "CNF-SAT-VC: 2\n"))

		// The count was consumed by the report
		_, err = orchestrator.AcceptLine(ctx, "E {<1,2>}")
		assert.ErrorIs(t, err, ErrEdgesBeforeVertexCount)
	})

	t.Run("Malformed lines", func(t *testing.T) {
		orchestrator := New()

		for _, line := range []string{"V", "V 1", "V 05", "X 3", "V  3"} {
			_, err := orchestrator.AcceptLine(ctx, line)
			assert.ErrorIs(t, err, parser.ErrMalformed, line)
		}
	})
}

func TestSolveTimeout(t *testing.T) {
	//** Arrange
	g, err := graph.NewGraph(4, []graph.Edge{{1, 2}, {2, 3}, {3, 4}})
	require.NoError(t, err)

	release := make(chan struct{})
	var finished atomic.Bool
	blocking := cover.CovererFunc(func(ctx context.Context, g *graph.Graph) (graph.Cover, error) {
		defer finished.Store(true)
		<-release
		return graph.Cover{2, 3}, nil
	})
	collectors := metrics.New()
	orchestrator := New(WithExactCoverer(blocking), WithTimeout(10*time.Millisecond), WithMetrics(collectors), WithVerification(true))

	//** Act
	report, err := orchestrator.Solve(context.Background(), g)

	//** Assert
	require.NoError(t, err)
	assert.True(t, report.ExactTimedOut)
	assert.True(t, strings.HasPrefix(report.String(), "CNF-SAT-VC: timeout\n"))
	assert.True(t, g.IsCover(report.Approx1))
	assert.True(t, g.IsCover(report.Approx2))
	assert.NotContains(t, report.Durations, ExactLabel)
	recorder := httptest.NewRecorder()
	collectors.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, recorder.Body.String(), "vertexcover_exact_timeouts_total 1")
	assert.False(t, finished.Load())

	// The abandoned strategy completes on its own later
	close(release)
	gomega.NewWithT(t).Eventually(finished.Load).Should(gomega.BeTrue())
}

func TestSolveZeroTimeout(t *testing.T) {
	g, err := graph.NewGraph(3, []graph.Edge{{1, 2}})
	require.NoError(t, err)
	blocking := cover.CovererFunc(func(ctx context.Context, g *graph.Graph) (graph.Cover, error) {
		time.Sleep(50 * time.Millisecond)
		return graph.Cover{1}, nil
	})
	orchestrator := New(WithExactCoverer(blocking), WithTimeout(0))

	report, err := orchestrator.Solve(context.Background(), g)

	require.NoError(t, err)
	assert.True(t, report.ExactTimedOut)
	assert.Equal(t, graph.Cover{1}, report.Approx1)
	assert.Equal(t, graph.Cover{1, 2}, report.Approx2)
}

func TestExactSlot(t *testing.T) {
	t.Run("Captured", func(t *testing.T) {
		slot := newExactSlot()

		assert.True(t, slot.deliver(graph.Cover{1}, nil, time.Second))
		cover, err, elapsed, ok := slot.collect()

		assert.True(t, ok)
		assert.NoError(t, err)
		assert.Equal(t, graph.Cover{1}, cover)
		assert.Equal(t, time.Second, elapsed)
		assert.NotPanics(t, func() { <-slot.done })
	})

	t.Run("Abandoned", func(t *testing.T) {
		slot := newExactSlot()

		_, _, _, ok := slot.collect()
		delivered := slot.deliver(graph.Cover{1}, nil, time.Second)

		assert.False(t, ok)
		assert.False(t, delivered)
		select {
		case <-slot.done:
			t.Fatal("abandoned slot must never be marked done")
		default:
		}
	})

	t.Run("Racing", func(t *testing.T) {
		for range 1000 {
			slot := newExactSlot()
			var delivered, collected bool
			var wait sync.WaitGroup
			wait.Add(2)
			go func() {
				defer wait.Done()
				delivered = slot.deliver(graph.Cover{}, nil, 0)
			}()
			go func() {
				defer wait.Done()
				_, _, _, collected = slot.collect()
			}()
			wait.Wait()

			// Either the result was captured, or the worker observed the abandonment
			if collected {
				assert.True(t, delivered)
			}
		}
	})
}

func TestSolveStrategyFailures(t *testing.T) {
	g, err := graph.NewGraph(3, []graph.Edge{{1, 2}})
	require.NoError(t, err)
	failure := errors.New("boom")

	tests := []struct {
		name    string
		options []Option
		err     error
	}{
		{
			name: "Exact error",
			options: []Option{WithExactCoverer(cover.CovererFunc(func(context.Context, *graph.Graph) (graph.Cover, error) {
				return nil, failure
			}))},
			err: failure,
		},
		{
			name: "Approximation panic",
			options: []Option{WithApproximations(
				cover.NewHighestDegreeCoverer(),
				cover.CovererFunc(func(context.Context, *graph.Graph) (graph.Cover, error) { panic("boom") }),
			)},
			err: ErrStrategyFailed,
		},
		{
			name: "Invalid cover",
			options: []Option{
				WithVerification(true),
				WithApproximations(
					cover.CovererFunc(func(context.Context, *graph.Graph) (graph.Cover, error) { return graph.Cover{3}, nil }),
					cover.NewRandomEdgeCoverer(nil),
				),
			},
			err: graph.ErrInvalidCover,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			orchestrator := New(test.options...)

			_, err := orchestrator.Solve(context.Background(), g)

			assert.ErrorIs(t, err, test.err)
			assert.ErrorIs(t, err, ErrStrategyFailed)
		})
	}
}

func TestSolveFailsWithoutWaitingForExact(t *testing.T) {
	//** Arrange
	g, err := graph.NewGraph(3, []graph.Edge{{1, 2}})
	require.NoError(t, err)

	release := make(chan struct{})
	defer close(release)
	blocking := cover.CovererFunc(func(context.Context, *graph.Graph) (graph.Cover, error) {
		<-release
		return graph.Cover{1}, nil
	})
	failure := errors.New("boom")
	orchestrator := New(
		WithExactCoverer(blocking),
		WithTimeout(time.Hour),
		WithApproximations(
			cover.NewHighestDegreeCoverer(),
			cover.CovererFunc(func(context.Context, *graph.Graph) (graph.Cover, error) { return nil, failure }),
		),
	)

	//** Act
	errs := make(chan error, 1)
	go func() {
		_, err := orchestrator.Solve(context.Background(), g)
		errs <- err
	}()

	//** Assert
	var solveErr error
	gomega.NewWithT(t).Eventually(errs).WithTimeout(5 * time.Second).Should(gomega.Receive(&solveErr))
	assert.ErrorIs(t, solveErr, failure)
	assert.ErrorIs(t, solveErr, ErrStrategyFailed)
}

func TestSolveHonorsCancellation(t *testing.T) {
	g, err := graph.NewGraph(3, []graph.Edge{{1, 2}})
	require.NoError(t, err)

	release := make(chan struct{})
	defer close(release)
	blocking := cover.CovererFunc(func(context.Context, *graph.Graph) (graph.Cover, error) {
		<-release
		return graph.Cover{1}, nil
	})
	orchestrator := New(WithExactCoverer(blocking), WithTimeout(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = orchestrator.Solve(ctx, g)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentOrchestrators(t *testing.T) {
	const instances = 8
	var wait sync.WaitGroup
	outputs := make([]string, instances)
	errs := make([]error, instances)

	for i := range instances {
		wait.Add(1)
		go func() {
			defer wait.Done()
			orchestrator := New()
			vertices := i + 3
			if _, err := orchestrator.AcceptLine(context.Background(), fmt.Sprintf("V %d", vertices)); err != nil {
				errs[i] = err
				return
			}
			// A star centered on the last vertex
			edges := make([]string, 0, vertices-1)
			for leaf := 1; leaf < vertices; leaf++ {
				edges = append(edges, fmt.Sprintf("<%d,%d>", leaf, vertices))
			}
			outputs[i], errs[i] = orchestrator.AcceptLine(context.Background(), "E {"+strings.Join(edges, ",")+"}")
		}()
	}
	wait.Wait()

	for i := range instances {
		require.NoError(t, errs[i])
		vertices := i + 3
		assert.True(t, strings.HasPrefix(outputs[i], fmt.Sprintf("CNF-SAT-VC: %d\nAPPROX-VC-1: %d\n", vertices, vertices)), outputs[i])
	}
}

func TestReportStats(t *testing.T) {
	report := Report{
		Exact:     graph.Cover{2},
		Approx1:   graph.Cover{2},
		Approx2:   graph.Cover{1, 2},
		Durations: map[string]time.Duration{ExactLabel: time.Millisecond},
	}

	stats := report.Stats()

	assert.Contains(t, stats, "CNF-SAT-VC(microsecond): 1000\n")
	assert.Contains(t, stats, "APPROX-VC-2(ratio): 2\n")
}
