package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	StepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "mongoplay", Name: "playground_steps_total", Help: "Number of playground steps by section and outcome."},
		[]string{"section", "status"},
	)
	StepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "mongoplay", Name: "playground_step_duration_seconds", Help: "Duration of playground steps.", Buckets: prometheus.DefBuckets},
		[]string{"section"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "mongoplay", Name: "http_requests_total", Help: "Number of HTTP requests by route and status code."},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "mongoplay", Name: "http_request_duration_seconds", Help: "Duration of HTTP requests.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(StepsTotal)
	reg.MustRegister(StepDuration)
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
}

// ObserveStep records the outcome of one playground step.
func ObserveStep(section, status string, d time.Duration) {
	StepsTotal.WithLabelValues(section, status).Inc()
	StepDuration.WithLabelValues(section).Observe(d.Seconds())
}
