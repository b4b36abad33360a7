package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tbourn/go-lists-backend/internal/domain"
)

// HTTPMetrics holds the Prometheus collectors for HTTP traffic.
//
// Labels stay bounded: path is the registered route (or the raw path when
// nothing matched), status is the numeric code, kind is a domain error kind.
type HTTPMetrics struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	inflight  prometheus.Gauge
	respSize  *prometheus.HistogramVec
	dbFailure *prometheus.CounterVec
}

// NewHTTPMetrics creates the collectors and registers them on reg. A
// collector that is already registered is reused, so building the router
// twice against the default registry (tests) does not panic.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		}),
		respSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP responses in bytes.",
			Buckets: prometheus.ExponentialBuckets(64, 4, 8), // 64B..1MiB
		}, []string{"method", "path"}),
		dbFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lists_data_access_errors_total",
			Help: "Data access failures surfaced to HTTP clients, by error kind.",
		}, []string{"kind"}),
	}
	m.requests = register(reg, m.requests)
	m.latency = register(reg, m.latency)
	m.inflight = register(reg, m.inflight)
	m.respSize = register(reg, m.respSize)
	m.dbFailure = register(reg, m.dbFailure)
	return m
}

// register registers c, returning the existing collector on a duplicate.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// Handler instruments each request. Errors attached with c.Error that carry
// a domain kind are counted in lists_data_access_errors_total.
func (m *HTTPMetrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.inflight.Inc()
		defer m.inflight.Dec()

		c.Next()

		path := routeOf(c)
		method := c.Request.Method
		m.requests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size >= 0 {
			m.respSize.WithLabelValues(method, path).Observe(float64(size))
		}
		for _, e := range c.Errors {
			if k := domain.KindOf(e.Err); k != 0 {
				m.dbFailure.WithLabelValues(k.String()).Inc()
			}
		}
	}
}
