// Package metrics registers the Prometheus collectors for the inventory
// service and exposes the scrape handler mounted at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_http_requests_total",
		Help: "HTTP requests processed, by method, route and status code.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// StockAdjustments counts stock level changes from any source: manual
	// adjustments, received purchase orders and shipped sales orders.
	StockAdjustments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_stock_adjustments_total",
		Help: "Stock adjustments applied.",
	})

	// PaymentsRecorded counts bill payments accepted by reconciliation.
	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_bill_payments_recorded_total",
		Help: "Bill payments recorded.",
	})

	// EventsPublished counts events written to the broker, by event type.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_events_published_total",
		Help: "Events published to the events topic, by type.",
	}, []string{"type"})

	// EventPublishFailures counts publish attempts that returned an error.
	EventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_event_publish_failures_total",
		Help: "Event publish attempts that failed.",
	})
)

// Middleware records request count and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
