package metadata

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "arnie_quotes"

// Metrics holds the Prometheus collectors fed by the Recorder.
// Collectors are registered on the registerer handed to NewMetrics,
// never on the global default registry.
type Metrics struct {
	fetchesTotal      *prometheus.CounterVec
	fetchDuration     prometheus.Histogram
	cacheLookupsTotal *prometheus.CounterVec
	resolutionsTotal  *prometheus.CounterVec
	errorsTotal       *prometheus.CounterVec
	batchesTotal      prometheus.Counter
	batchItemsTotal   prometheus.Counter
	batchWindowsTotal prometheus.Counter
	batchDuration     prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		fetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "fetches_total",
				Help:      "Fetcher calls by HTTP status (0 when the transport failed)",
			},
			[]string{"status"},
		),
		fetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "fetch_duration_seconds",
				Help:      "Duration of fetcher calls",
				Buckets:   prometheus.DefBuckets,
			},
		),
		cacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by result",
			},
			[]string{"result"},
		),
		resolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "resolutions_total",
				Help:      "Resolved identifiers by outcome",
			},
			[]string{"outcome"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "errors_total",
				Help:      "Recorded errors by cause",
			},
			[]string{"cause"},
		),
		batchesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "batches_total",
				Help:      "Completed FetchAll calls",
			},
		),
		batchItemsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "batch_items_total",
				Help:      "Identifiers processed by completed FetchAll calls",
			},
		),
		batchWindowsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "batch_windows_total",
				Help:      "Windows executed by completed FetchAll calls",
			},
		),
		batchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "batch_duration_seconds",
				Help:      "Duration of FetchAll calls",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}

	collectors := []prometheus.Collector{
		m.fetchesTotal,
		m.fetchDuration,
		m.cacheLookupsTotal,
		m.resolutionsTotal,
		m.errorsTotal,
		m.batchesTotal,
		m.batchItemsTotal,
		m.batchWindowsTotal,
		m.batchDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func statusLabel(httpStatus int) string {
	return strconv.Itoa(httpStatus)
}

func cacheLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func outcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
