package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ResolutionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "riskmap_resolutions_total",
		Help: "Total number of point resolutions",
	})
	PredictionFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "riskmap_prediction_fallbacks_total",
		Help: "Resolutions that fell back to synthetic prediction data",
	})
	HourlyFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "riskmap_hourly_fallbacks_total",
		Help: "Resolutions whose hourly series fell back to synthetic data",
	})
	GeocodeEmptyTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "riskmap_geocode_empty_total",
		Help: "Reverse-geocode calls that returned no results",
	})
	GeocodeCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "riskmap_geocode_cache_hits_total",
		Help: "Reverse-geocode cache hits",
	})
	GeocodeCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "riskmap_geocode_cache_misses_total",
		Help: "Reverse-geocode cache misses",
	})
	PredictionDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "riskmap_prediction_duration_ms",
		Help:    "Prediction service call duration in milliseconds",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	})
	GeocodeDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "riskmap_geocode_duration_ms",
		Help:    "Reverse-geocode call duration in milliseconds",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	})
)

func init() {
	prometheus.MustRegister(ResolutionsTotal)
	prometheus.MustRegister(PredictionFallbacksTotal)
	prometheus.MustRegister(HourlyFallbacksTotal)
	prometheus.MustRegister(GeocodeEmptyTotal)
	prometheus.MustRegister(GeocodeCacheHitsTotal)
	prometheus.MustRegister(GeocodeCacheMissesTotal)
	prometheus.MustRegister(PredictionDurationMs)
	prometheus.MustRegister(GeocodeDurationMs)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
