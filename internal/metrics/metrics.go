package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Upstream labels
const (
	UpstreamOCRProvider = "ocr_provider"
	UpstreamOCRBridge   = "ocr_bridge"
	UpstreamCleaner     = "cleaner"
	UpstreamTesseract   = "tesseract"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_http_requests_total",
			Help: "Total number of HTTP requests handled by the bridge",
		},
		[]string{"route", "status"},
	)
	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_upstream_requests_total",
			Help: "Total number of calls made to upstream services",
		},
		[]string{"upstream", "outcome"},
	)
	upstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bridge_upstream_request_duration_seconds",
			Help:    "Duration of calls made to upstream services",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 90},
		},
		[]string{"upstream"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(upstreamRequestsTotal)
	prometheus.MustRegister(upstreamRequestDuration)
}

// ObserveUpstream records the outcome of one upstream call started at start
func ObserveUpstream(upstream string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	upstreamRequestsTotal.WithLabelValues(upstream, outcome).Inc()
	upstreamRequestDuration.WithLabelValues(upstream).Observe(time.Since(start).Seconds())
}

// Middleware counts handled requests by matched route and response status
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var e *fiber.Error
			if errors.As(err, &e) {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		httpRequestsTotal.WithLabelValues(c.Route().Path, strconv.Itoa(status)).Inc()

		return err
	}
}
