package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Lookups            *prometheus.CounterVec
	APIErrors          prometheus.Counter
	RequestSeconds     *prometheus.HistogramVec
	ActiveWorkers      prometheus.Gauge
	RetryRounds        prometheus.Counter
	DuplicateAddresses prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Lookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "waypoint_lookups_total",
			Help: "Total number of address lookups, partitioned by outcome.",
		}, []string{"status"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "waypoint_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "waypoint_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "waypoint_active_workers",
			Help: "Current number of active workers performing lookups.",
		}),
		RetryRounds: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "waypoint_retry_rounds_total",
			Help: "Total number of retry rounds dispatched for failed lookups.",
		}),
		DuplicateAddresses: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "waypoint_duplicate_addresses",
			Help: "Number of duplicated composed addresses in the last batch.",
		}),
	}
}
