package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "finance_mcp"

// Outcome labels for tool invocations
const (
	OutcomeSuccess         = "success"
	OutcomeUnknownTool     = "unknown_tool"
	OutcomeInvalidArgument = "invalid_argument"
	OutcomeProviderError   = "provider_error"
)

var (
	// Registry holds every collector exported by the server
	Registry = prometheus.NewRegistry()

	ToolInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_invocations_total",
			Help:      "Total number of tool invocations",
		},
		[]string{"tool", "outcome"},
	)

	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_duration_seconds",
			Help:      "Tool invocation duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"tool"},
	)

	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Total number of requests sent to the financial data provider",
		},
		[]string{"endpoint", "status"}, // status: HTTP status code or "error"
	)

	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Financial data provider request latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"endpoint"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		ToolInvocations,
		ToolDuration,
		ProviderRequests,
		ProviderLatency,
	)
}

// ObserveTool records a finished tool invocation
func ObserveTool(tool, outcome string, elapsed time.Duration) {
	ToolInvocations.WithLabelValues(tool, outcome).Inc()
	ToolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// ObserveProvider records a finished provider request
func ObserveProvider(endpoint, status string, elapsed time.Duration) {
	ProviderRequests.WithLabelValues(endpoint, status).Inc()
	ProviderLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
