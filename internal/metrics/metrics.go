// Package metrics holds the Prometheus collectors for tool traffic.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for ToolCallsTotal.
const (
	OutcomeOK          = "ok"
	OutcomeRejected    = "rejected"
	OutcomeUnknownTool = "unknown_tool"
)

var (
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "calculator_mcp",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool name and outcome.",
		},
		[]string{"tool", "outcome"},
	)

	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "calculator_mcp",
			Name:      "validation_failures_total",
			Help:      "Rejected invocations by error kind.",
		},
		[]string{"kind"},
	)

	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "calculator_mcp",
			Name:      "tool_call_duration_seconds",
			Help:      "Time spent validating and computing a tool call.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"tool"},
	)
)

// ObserveCall records one finished invocation.
func ObserveCall(tool, outcome string, started time.Time) {
	ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
	ToolCallDuration.WithLabelValues(tool).Observe(time.Since(started).Seconds())
}

// ObserveRejection counts a validation failure of the given kind.
func ObserveRejection(kind string) {
	ValidationFailuresTotal.WithLabelValues(kind).Inc()
}
