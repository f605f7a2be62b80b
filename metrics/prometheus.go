package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/brkyvrkn/network-kit/neterr"
	"github.com/brkyvrkn/network-kit/router"
)

// Collector exports round trips as Prometheus metrics. It implements
// router.Observer.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ router.Observer = (*Collector)(nil)

// NewCollector registers the collector metrics with reg under namespace.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		// requests counts round trips by method, status code and outcome.
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of round trips",
		}, []string{"method", "code", "outcome"}),

		// duration observes round trip latency in seconds.
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Round trip latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// Observe records one round trip.
func (c *Collector) Observe(e router.Event) {
	c.requests.WithLabelValues(e.Method, strconv.Itoa(e.StatusCode), outcome(e)).Inc()
	c.duration.WithLabelValues(e.Method).Observe(e.Duration.Seconds())
}

// outcome is the classification category, or the error kind when no
// response was classified or the body could not be decoded.
func outcome(e router.Event) string {
	if e.Err != nil && e.Err.Kind == neterr.Coding {
		return "coding"
	}
	if e.StatusCode != 0 {
		return e.Outcome.Category.String()
	}
	if e.Err != nil {
		return kindLabel(e.Err.Kind)
	}
	return "unknown"
}

func kindLabel(k neterr.Kind) string {
	switch k {
	case neterr.ConnectionFailed:
		return "connection_failed"
	case neterr.NoResponse:
		return "no_response"
	default:
		return "error"
	}
}
