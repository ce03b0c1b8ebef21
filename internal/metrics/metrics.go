// Package metrics exposes Prometheus instruments for the HTTP layer and the
// analytics services.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vanshika/herograph/backend/internal/domain"
)

// Collector holds all Prometheus metrics for the application. Each Collector
// owns its registry, so several can coexist in tests.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	OverlayComputations *prometheus.CounterVec
	OverlayDuration     prometheus.Histogram
	OverlayNodes        prometheus.Gauge
	OverlayLinks        prometheus.Gauge

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	PathQueries *prometheus.CounterVec
}

// NewCollector creates a collector with the given namespace and registers
// the Go runtime and process collectors next to the application metrics.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		OverlayComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overlay_computations_total",
			Help:      "Analytics overlay computations by result",
		}, []string{"result"}),
		OverlayDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overlay_computation_seconds",
			Help:      "Time spent computing the analytics overlay",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		OverlayNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overlay_nodes",
			Help:      "Nodes in the most recently computed overlay",
		}),
		OverlayLinks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overlay_links",
			Help:      "Links in the most recently computed overlay",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overlay_cache_hits_total",
			Help:      "Overlay requests served from the stored result",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overlay_cache_misses_total",
			Help:      "Overlay requests that waited for a computation",
		}),
		PathQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_queries_total",
			Help:      "Shortest path queries by outcome",
		}, []string{"outcome"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.OverlayComputations,
		c.OverlayDuration,
		c.OverlayNodes,
		c.OverlayLinks,
		c.CacheHits,
		c.CacheMisses,
		c.PathQueries,
	)
	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveHTTP records one finished request.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// OverlayComputed records an overlay computation.
func (c *Collector) OverlayComputed(elapsed time.Duration, nodes, edges int, err error) {
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrEmptyGraph):
		result = "empty"
	case err != nil:
		result = "error"
	case nodes == 0:
		result = "empty"
	}
	c.OverlayComputations.WithLabelValues(result).Inc()
	c.OverlayDuration.Observe(elapsed.Seconds())
	c.OverlayNodes.Set(float64(nodes))
	c.OverlayLinks.Set(float64(edges))
}

// OverlayServed records whether an overlay request hit the stored result.
func (c *Collector) OverlayServed(cached bool) {
	if cached {
		c.CacheHits.Inc()
		return
	}
	c.CacheMisses.Inc()
}

// PathQueried records the outcome of a shortest path query.
func (c *Collector) PathQueried(outcome string) {
	c.PathQueries.WithLabelValues(outcome).Inc()
}
