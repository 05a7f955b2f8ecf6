package transport

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors updated by a Client. A nil *Metrics
// records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	retries  *prometheus.CounterVec
	cacheHit prometheus.Counter
}

// NewMetrics creates the transport collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "yieldgate",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests sent to the gateway.",
			},
			[]string{"method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "yieldgate",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests sent to the gateway.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"method"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "yieldgate",
				Subsystem: "http",
				Name:      "retries_total",
				Help:      "Total number of retried HTTP requests.",
			},
			[]string{"method"},
		),
		cacheHit: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "yieldgate",
				Subsystem: "http",
				Name:      "cache_hits_total",
				Help:      "Total number of GET requests served from the response cache.",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration, m.retries, m.cacheHit} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observe(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(method, label).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) retry(method string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(method).Inc()
}

func (m *Metrics) hit() {
	if m == nil {
		return
	}
	m.cacheHit.Inc()
}
