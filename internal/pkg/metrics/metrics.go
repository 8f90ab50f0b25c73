package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/your-org/restaurant-site/internal/domain/cart"
)

// Metrics holds the site's Prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	cartMutations    *prometheus.CounterVec
	cartLoadFailures *prometheus.CounterVec
	cartLines        prometheus.Gauge
	cartQuantity     prometheus.Gauge
	cartSubtotal     prometheus.Gauge

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New creates and registers the collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cartMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_mutations_total",
				Help: "Cart writes by operation and result",
			},
			[]string{"op", "result"},
		),
		cartLoadFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_load_failures_total",
				Help: "Persisted cart reads that fell back to an empty cart",
			},
			[]string{"reason"},
		),
		cartLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cart_lines",
			Help: "Distinct line items in the cart",
		}),
		cartQuantity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cart_quantity",
			Help: "Total quantity shown on the cart badge",
		}),
		cartSubtotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cart_subtotal",
			Help: "Cart subtotal in the configured currency",
		}),
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.cartMutations,
		m.cartLoadFailures,
		m.cartLines,
		m.cartQuantity,
		m.cartSubtotal,
		m.requestCounter,
		m.requestLatency,
	)
	return m
}

// ObserveMutation counts a cart write
func (m *Metrics) ObserveMutation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.cartMutations.WithLabelValues(op, result).Inc()
}

// ObserveLoadFailure counts a read that recovered to an empty cart
func (m *Metrics) ObserveLoadFailure(reason string) {
	m.cartLoadFailures.WithLabelValues(reason).Inc()
}

// Render updates the cart gauges; Metrics is registered as a cart view.
func (m *Metrics) Render(vm cart.ViewModel) {
	m.cartLines.Set(float64(len(vm.Rows)))
	m.cartQuantity.Set(float64(vm.Count))
	m.cartSubtotal.Set(vm.Subtotal)
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
