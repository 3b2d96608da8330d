package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// unmatchedRoute labels requests that did not resolve to a registered route.
// Share tokens and item ids only ever appear in the raw path, so labelling by
// route pattern keeps them out of the exported series.
const unmatchedRoute = "unmatched"

// healthCheckRoutes are polled by orchestrators and would drown the API series.
var healthCheckRoutes = map[string]struct{}{
	"/health": {},
	"/ready":  {},
}

type httpMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter, namespace string) (*httpMetrics, error) {
	requests, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	inFlight, err := meter.Int64UpDownCounter(
		fmt.Sprintf("%s_http_requests_in_flight", namespace),
		metric.WithDescription("Number of HTTP requests currently being served"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{requests: requests, duration: duration, inFlight: inFlight}, nil
}

// HTTPMetricsMiddleware returns a Gin middleware that records request count,
// duration and concurrency labelled by method, route pattern and status code.
// Liveness and readiness checks are not recorded.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	m, err := newHTTPMetrics(meterProvider.Meter(namespace), namespace)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		route := routeLabel(c.FullPath())
		if _, skip := healthCheckRoutes[route]; skip {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		method := attribute.String("method", c.Request.Method)
		path := attribute.String("path", route)

		m.inFlight.Add(ctx, 1, metric.WithAttributes(method, path))
		start := time.Now()

		c.Next()

		m.inFlight.Add(ctx, -1, metric.WithAttributes(method, path))

		attrs := metric.WithAttributes(
			method,
			path,
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)
		m.requests.Add(ctx, 1, attrs)
		m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	}
}

func routeLabel(fullPath string) string {
	if fullPath == "" {
		return unmatchedRoute
	}
	return fullPath
}
