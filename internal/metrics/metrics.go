// Package metrics exposes Prometheus counters for the viewer.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PointerEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "indiamap_pointer_events_total",
		Help: "Pointer events dispatched to the state machine",
	}, []string{"event", "applied"})
	ThemeTogglesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "indiamap_theme_toggles_total",
		Help: "Total theme toggles",
	})
	DatasetLoadDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "indiamap_dataset_load_duration_ms",
		Help:    "Dataset fetch and decode duration in milliseconds",
		Buckets: []float64{5, 10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
	DatasetLoadFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "indiamap_dataset_load_fail_total",
		Help: "Total failed dataset loads",
	})
	DatasetFeatures = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "indiamap_dataset_features",
		Help: "Number of features in the loaded dataset",
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "indiamap_cache_hits_total",
		Help: "Dataset fetches served from the sqlite cache",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "indiamap_cache_misses_total",
		Help: "Dataset fetches that went to the source",
	})
	SSEClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "indiamap_sse_clients",
		Help: "Connected web mirror clients",
	})
)

func init() {
	prometheus.MustRegister(PointerEventsTotal)
	prometheus.MustRegister(ThemeTogglesTotal)
	prometheus.MustRegister(DatasetLoadDurationMs)
	prometheus.MustRegister(DatasetLoadFailTotal)
	prometheus.MustRegister(DatasetFeatures)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(SSEClients)
}

// ObservePointer counts one dispatched pointer event.
func ObservePointer(event string, applied bool) {
	PointerEventsTotal.WithLabelValues(event, strconv.FormatBool(applied)).Inc()
}

// ObserveCache counts a cache lookup.
func ObserveCache(hit bool) {
	if hit {
		CacheHitsTotal.Inc()
		return
	}
	CacheMissesTotal.Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
