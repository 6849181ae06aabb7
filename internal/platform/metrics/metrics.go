// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics owns the Prometheus collectors exported on /metrics.

Collectors are registered on a private [prometheus.Registry] instead of the
global default, so tests can build as many instances as they like.

Exported series:

  - inkwell_http_requests_total{method,route,status}
  - inkwell_http_request_duration_seconds{method,route}
  - inkwell_render_cache_total{result}
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "inkwell"

// Render cache outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Registry bundles the collectors used across the service.
type Registry struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	renderCache     *prometheus.CounterVec
}

// New creates a [Registry] with process and Go runtime collectors attached.
func New() *Registry {
	registry := prometheus.NewRegistry()

	metrics := &Registry{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		renderCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_cache_total",
			Help:      "Rendered chapter cache lookups, by result.",
		}, []string{"result"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.requestsTotal,
		metrics.requestDuration,
		metrics.renderCache,
	)

	return metrics
}

// ObserveRequest records one finished HTTP request.
func (metrics *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if metrics == nil {
		return
	}
	metrics.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	metrics.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveRenderCache records the outcome of one render cache lookup.
func (metrics *Registry) ObserveRenderCache(result string) {
	if metrics == nil {
		return
	}
	metrics.renderCache.WithLabelValues(result).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (metrics *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{})
}

// Gatherer returns the underlying registry for inspection in tests.
func (metrics *Registry) Gatherer() prometheus.Gatherer {
	return metrics.registry
}
