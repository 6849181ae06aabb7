// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/metrics"
)

/*
TestRegistry_Observe verifies that observations land in the exported series.
*/
func TestRegistry_Observe(t *testing.T) {
	registry := metrics.New()

	registry.ObserveRequest(http.MethodGet, "/api/v1/books", http.StatusOK, 15*time.Millisecond)
	registry.ObserveRequest(http.MethodGet, "/api/v1/books", http.StatusOK, 20*time.Millisecond)
	registry.ObserveRenderCache(metrics.CacheHit)

	count, err := testutil.GatherAndCount(registry.Gatherer(), "inkwell_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = testutil.GatherAndCount(registry.Gatherer(), "inkwell_render_cache_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

/*
TestRegistry_Handler verifies the text exposition endpoint.
*/
func TestRegistry_Handler(t *testing.T) {
	registry := metrics.New()
	registry.ObserveRenderCache(metrics.CacheMiss)

	recorder := httptest.NewRecorder()
	registry.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `inkwell_render_cache_total{result="miss"} 1`)
}

/*
TestRegistry_Nil verifies that a nil registry is a silent no-op.
*/
func TestRegistry_Nil(t *testing.T) {
	var registry *metrics.Registry
	assert.NotPanics(t, func() {
		registry.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		registry.ObserveRenderCache(metrics.CacheHit)
	})
}
