package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics for the server.
type Collector struct {
	registry *prometheus.Registry

	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	InFlightRequests   prometheus.Gauge
	LoginsTotal        *prometheus.CounterVec
	InvoicesTotal      prometheus.Counter
	AppointmentsTotal  prometheus.Counter
	RemindersSentTotal prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clinic_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		InFlightRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "clinic_http_in_flight_requests",
			Help: "Number of requests currently being served.",
		}),
		LoginsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		InvoicesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "clinic_invoices_created_total",
			Help: "Invoices created.",
		}),
		AppointmentsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "clinic_appointments_created_total",
			Help: "Appointments created.",
		}),
		RemindersSentTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "clinic_reminders_sent_total",
			Help: "Appointment reminders dispatched.",
		}),
	}
}

// Middleware records request counts, latency and in-flight gauge for every
// request. The route template is used as the path label to keep cardinality
// bounded.
func (m *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			m.InFlightRequests.Inc()
			defer m.InFlightRequests.Dec()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}

			m.RequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			m.RequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the scrape endpoint for this collector's registry.
func (m *Collector) Handler() echo.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return echo.WrapHandler(h)
}
