package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StageParse    = "parse"
	StageAssemble = "assemble"
	StageStitch   = "stitch"
	StageSearch   = "search"

	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	registerOnce sync.Once

	solveRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mosaic",
			Subsystem: "solver",
			Name:      "runs_total",
			Help:      "Total solve pipeline runs by outcome and failing stage.",
		},
		[]string{"outcome", "stage"},
	)
	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mosaic",
			Subsystem: "solver",
			Name:      "stage_duration_seconds",
			Help:      "Solve pipeline stage duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
	searchStates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mosaic",
			Subsystem: "assembler",
			Name:      "states_total",
			Help:      "Partial placements expanded by the layout search.",
		},
	)
	searchDeadEnds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mosaic",
			Subsystem: "assembler",
			Name:      "dead_ends_total",
			Help:      "Partial placements with no linking candidate.",
		},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mosaic",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mosaic",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(solveRuns, stageDuration, searchStates, searchDeadEnds, httpRequests, httpDuration)
	})
}

// RecordSolve counts one pipeline run. stage names the failing stage and is
// empty for successful runs.
func RecordSolve(outcome, stage string) {
	RegisterMetrics()
	solveRuns.WithLabelValues(outcome, stage).Inc()
}

func RecordStage(stage string, duration time.Duration) {
	RegisterMetrics()
	stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

func RecordSearchEffort(states, deadEnds int) {
	RegisterMetrics()
	searchStates.Add(float64(states))
	searchDeadEnds.Add(float64(deadEnds))
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// WriteTextfile dumps the default registry in the node_exporter textfile
// format so batch runs can publish their counters.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
