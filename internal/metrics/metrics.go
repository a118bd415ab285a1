// Package metrics holds the Prometheus collectors of the API and the Fiber
// middleware that feeds the HTTP ones.
package metrics

import (
	"strconv"
	"time"

	"foodgram-backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodgram_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// MembershipTogglesTotal counts favorite and shopping cart changes.
	MembershipTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_membership_toggles_total",
			Help: "Total number of favorite and shopping cart add/remove attempts",
		},
		[]string{"list", "action", "result"},
	)

	SubscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_subscriptions_total",
			Help: "Total number of subscribe/unsubscribe attempts",
		},
		[]string{"action", "result"},
	)
)

func RecordMembershipToggle(list, action string, err error) {
	MembershipTogglesTotal.WithLabelValues(list, action, result(err)).Inc()
}

func RecordSubscription(action string, err error) {
	SubscriptionsTotal.WithLabelValues(action, result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case domain.KindOf(err) != domain.KindInternal:
		return ResultRejected
	default:
		return ResultError
	}
}

// Middleware records the request count and latency under the matched route
// pattern, so path parameters do not explode the label set.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
