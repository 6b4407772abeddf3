package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pontos",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pontos",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Catalog metrics
	PointsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pontos",
		Subsystem: "catalog",
		Name:      "points_created_total",
		Help:      "Points added to the catalog",
	}, []string{"categoria"})

	PointsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pontos",
		Subsystem: "catalog",
		Name:      "points_deleted_total",
		Help:      "Points removed from the catalog",
	})

	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pontos",
		Subsystem: "catalog",
		Name:      "validation_failures_total",
		Help:      "Rejected create/update requests by offending field",
	}, []string{"campo"})

	NearbySearchResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pontos",
		Subsystem: "catalog",
		Name:      "nearby_search_results",
		Help:      "Result-set size of proximity searches",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
