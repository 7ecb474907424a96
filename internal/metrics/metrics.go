// Package metrics exposes HTTP and inventory metrics through a Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"culinary-be/internal/notify"
	"culinary-be/internal/stats"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	stockItems    *prometheus.GaugeVec
	totalItems    prometheus.Gauge
	pendingOrders prometheus.Gauge
	notifications *prometheus.CounterVec
	sessions      prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		stockItems: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "inventory_items",
				Help: "Inventory items by stock status",
			},
			[]string{"status"},
		),
		totalItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_items_total",
			Help: "Number of inventory items",
		}),
		pendingOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_pending_orders",
			Help: "Orders that are processing, in transit or scheduled",
		}),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_total",
				Help: "Notifications emitted by variant",
			},
			[]string{"variant"},
		),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "workflow_sessions",
			Help: "Live workflow sessions",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.stockItems,
		m.totalItems,
		m.pendingOrders,
		m.notifications,
		m.sessions,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveStats is a stats.Observer.
func (m *Metrics) ObserveStats(s stats.Stats) {
	m.stockItems.WithLabelValues("low").Set(float64(s.LowStock))
	m.stockItems.WithLabelValues("critical").Set(float64(s.CriticalStock))
	m.stockItems.WithLabelValues("normal").Set(float64(s.NormalStock))
	m.totalItems.Set(float64(s.TotalItems))
	m.pendingOrders.Set(float64(s.PendingOrders))
}

// Notifier counts notifications by variant.
func (m *Metrics) Notifier() notify.Notifier {
	return notify.NotifierFunc(func(n notify.Notification) {
		m.notifications.WithLabelValues(n.Variant).Inc()
	})
}

func (m *Metrics) SetSessions(n int) {
	m.sessions.Set(float64(n))
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
