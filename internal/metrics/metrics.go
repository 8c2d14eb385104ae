package metrics

import (
	"net/http"
	"time"

	"github.com/limaJavier/vertexcover/pkg/sat"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vertexcover"

// Metrics groups the collectors of a single orchestrator. Each instance owns its registry so that
// several orchestrators never collide on registration
type Metrics struct {
	registry *prometheus.Registry

	strategyDuration *prometheus.HistogramVec
	coverSize        *prometheus.GaugeVec
	exactTimeouts    prometheus.Counter
	satQueries       *prometheus.CounterVec
}

func New() *Metrics {
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),
		strategyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "strategy_duration_seconds",
			Help:      "Wall time spent by each strategy on a graph.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"strategy"}),
		coverSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cover_size",
			Help:      "Size of the last cover produced by each strategy.",
		}, []string{"strategy"}),
		exactTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exact_timeouts_total",
			Help:      "Number of graphs whose exact strategy exceeded its budget.",
		}),
		satQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sat_queries_total",
			Help:      "Number of SAT queries by outcome.",
		}, []string{"result"}),
	}

	metrics.registry.MustRegister(
		metrics.strategyDuration,
		metrics.coverSize,
		metrics.exactTimeouts,
		metrics.satQueries,
	)
	return metrics
}

func (metrics *Metrics) ObserveStrategy(strategy string, elapsed time.Duration, size int) {
	metrics.strategyDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
	metrics.coverSize.WithLabelValues(strategy).Set(float64(size))
}

func (metrics *Metrics) ObserveTimeout() {
	metrics.exactTimeouts.Inc()
}

func (metrics *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{})
}

// InstrumentSolver counts every query answered by solver
func (metrics *Metrics) InstrumentSolver(solver sat.SATSolver) sat.SATSolver {
	return &instrumentedSolver{solver: solver, queries: metrics.satQueries}
}

type instrumentedSolver struct {
	solver  sat.SATSolver
	queries *prometheus.CounterVec
}

func (s *instrumentedSolver) Solve(instance sat.SAT) (sat.SATSolution, error) {
	solution, err := s.solver.Solve(instance)
	switch {
	case err != nil:
		s.queries.WithLabelValues("error").Inc()
	case solution == nil:
		s.queries.WithLabelValues("unsatisfiable").Inc()
	default:
		s.queries.WithLabelValues("satisfiable").Inc()
	}
	return solution, err
}
