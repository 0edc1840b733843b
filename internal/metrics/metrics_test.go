package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePointer(t *testing.T) {
	before := testutil.ToFloat64(PointerEventsTotal.WithLabelValues("click", "true"))
	ObservePointer("click", true)
	ObservePointer("click", false)
	assert.Equal(t, before+1, testutil.ToFloat64(PointerEventsTotal.WithLabelValues("click", "true")))
}

func TestObserveCache(t *testing.T) {
	hits := testutil.ToFloat64(CacheHitsTotal)
	misses := testutil.ToFloat64(CacheMissesTotal)
	ObserveCache(true)
	ObserveCache(false)
	ObserveCache(false)
	assert.Equal(t, hits+1, testutil.ToFloat64(CacheHitsTotal))
	assert.Equal(t, misses+2, testutil.ToFloat64(CacheMissesTotal))
}

func TestHandlerExposesMetrics(t *testing.T) {
	ThemeTogglesTotal.Inc()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "indiamap_theme_toggles_total")
}
