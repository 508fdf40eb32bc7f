package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge
	DBQueryDuration    *prometheus.HistogramVec

	ResolutionsTotal    *prometheus.CounterVec
	ResolutionDuration  *prometheus.HistogramVec
	SelectionSuperseded prometheus.Counter
	AggregateCacheTotal *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		ResolutionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_resolutions_total",
			Help:        "Availability resolutions by operation, day part and outcome",
			ConstLabels: labels,
		}, []string{"operation", "part", "outcome"}),
		ResolutionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "availability_resolution_duration_seconds",
			Help:        "Availability resolution latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
		SelectionSuperseded: factory.NewCounter(prometheus.CounterOpts{
			Name:        "selection_superseded_responses_total",
			Help:        "Range selection responses discarded because a newer query replaced them",
			ConstLabels: labels,
		}),
		AggregateCacheTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_aggregate_cache_total",
			Help:        "Month aggregate cache lookups by result",
			ConstLabels: labels,
		}, []string{"result"}),
	}
}

// ObserveResolution учитывает один проход движка доступности
func (m *Metrics) ObserveResolution(operation, part, outcome string, took time.Duration) {
	m.ResolutionsTotal.WithLabelValues(operation, part, outcome).Inc()
	m.ResolutionDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// IncSelectionSuperseded учитывает отброшенный устаревший ответ
func (m *Metrics) IncSelectionSuperseded() {
	m.SelectionSuperseded.Inc()
}

// ObserveCache учитывает попадание/промах кэша агрегатов
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.AggregateCacheTotal.WithLabelValues(result).Inc()
}
