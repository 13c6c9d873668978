package middleware

import (
	"time"

	"authsvc/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

const unmatchedRoute = "unmatched"

// MetricsMiddleware records request counts and latency per route pattern.
// It must wrap the logger middleware so the error handler has already set
// the final status.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		route := c.Path()
		if route == "" {
			route = unmatchedRoute
		}
		m.metrics.ObserveHTTP(c.Request().Method, route, c.Response().Status, time.Since(start))

		return err
	}
}
