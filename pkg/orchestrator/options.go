package orchestrator

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/limaJavier/vertexcover/internal/metrics"
	"github.com/limaJavier/vertexcover/pkg/cover"
)

const DefaultTimeout = 120 * time.Second

type Option func(*Orchestrator)

// WithTimeout bounds the exact strategy only, the approximations always run to completion
func WithTimeout(timeout time.Duration) Option {
	return func(orchestrator *Orchestrator) {
		orchestrator.timeout = timeout
	}
}

func WithExactCoverer(coverer cover.Coverer) Option {
	return func(orchestrator *Orchestrator) {
		orchestrator.exact = coverer
	}
}

func WithApproximations(approx1, approx2 cover.Coverer) Option {
	return func(orchestrator *Orchestrator) {
		orchestrator.approx1 = approx1
		orchestrator.approx2 = approx2
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(orchestrator *Orchestrator) {
		orchestrator.logger = logger
	}
}

func WithMetrics(metrics *metrics.Metrics) Option {
	return func(orchestrator *Orchestrator) {
		orchestrator.metrics = metrics
	}
}

// WithVerification checks every cover against the graph before it is reported
func WithVerification(verify bool) Option {
	return func(orchestrator *Orchestrator) {
		orchestrator.verify = verify
	}
}
