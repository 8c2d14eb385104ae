package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"github.com/limaJavier/vertexcover/pkg/graph"
)

const (
	ExactLabel    = "CNF-SAT-VC"
	Approx1Label  = "APPROX-VC-1"
	Approx2Label  = "APPROX-VC-2"
	TimeoutMarker = "timeout"
)

type Report struct {
	Exact         graph.Cover
	ExactTimedOut bool
	Approx1       graph.Cover
	Approx2       graph.Cover
	// Wall time per strategy label, the exact strategy is missing when it timed out
	Durations map[string]time.Duration
}

// String renders the three report lines, each one terminated by a newline
func (report Report) String() string {
	exact := report.Exact.String()
	if report.ExactTimedOut {
		exact = TimeoutMarker
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "%v: %v\n", ExactLabel, exact)
	fmt.Fprintf(&builder, "%v: %v\n", Approx1Label, report.Approx1.String())
	fmt.Fprintf(&builder, "%v: %v\n", Approx2Label, report.Approx2.String())
	return builder.String()
}

// Stats renders timing, sizes and approximation ratios
func (report Report) Stats() string {
	var builder strings.Builder
	for _, label := range []string{ExactLabel, Approx1Label, Approx2Label} {
		if elapsed, ok := report.Durations[label]; ok {
			fmt.Fprintf(&builder, "%v(microsecond): %d\n", label, elapsed.Microseconds())
		}
	}

	fmt.Fprintf(&builder, "%v(size): %d\n", Approx1Label, report.Approx1.Size())
	fmt.Fprintf(&builder, "%v(size): %d\n", Approx2Label, report.Approx2.Size())
	if report.ExactTimedOut {
		return builder.String()
	}

	fmt.Fprintf(&builder, "%v(size): %d\n", ExactLabel, report.Exact.Size())
	if report.Exact.Size() > 0 {
		fmt.Fprintf(&builder, "%v(ratio): %g\n", Approx1Label, float64(report.Approx1.Size())/float64(report.Exact.Size()))
		fmt.Fprintf(&builder, "%v(ratio): %g\n", Approx2Label, float64(report.Approx2.Size())/float64(report.Exact.Size()))
	}
	return builder.String()
}
