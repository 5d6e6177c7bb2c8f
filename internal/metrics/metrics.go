package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GatewayFailures counts normalized gateway failures by kind
	GatewayFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "advent",
		Name:      "gateway_failures_total",
		Help:      "Gateway calls that failed, by normalized failure kind.",
	}, []string{"kind"})

	// StateEvents counts events applied to the state container
	StateEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "advent",
		Name:      "state_events_total",
		Help:      "Events applied to the application state, by event type.",
	}, []string{"event"})

	// WSConnections is the number of connected renderers
	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "advent",
		Name:      "ws_connections",
		Help:      "Renderers connected to the state stream.",
	})

	workflowDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "advent",
		Name:      "workflow_duration_seconds",
		Help:      "Duration of orchestrator workflows.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"workflow", "outcome"})
)

// ObserveWorkflow records how long a workflow took. Use as
// defer metrics.ObserveWorkflow("name", time.Now(), &err).
func ObserveWorkflow(workflow string, start time.Time, errp *error) {
	outcome := "ok"
	if errp != nil && *errp != nil {
		outcome = "error"
	}
	workflowDuration.WithLabelValues(workflow, outcome).Observe(time.Since(start).Seconds())
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
