package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const prefix = "plotterm"

type recorder struct {
	panelFetchDuration *prometheus.HistogramVec
	panelEmpty         *prometheus.GaugeVec
	dsQueryDuration    *prometheus.HistogramVec
	dsQueryCacheHits   *prometheus.CounterVec
}

// NewPrometheus returns a Recorder that registers its metrics on reg.
func NewPrometheus(reg prometheus.Registerer) Recorder {
	r := &recorder{
		panelFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Subsystem: "panel",
			Name:      "fetch_duration_seconds",
			Help:      "The duration of the panel data fetches.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"panel", "success"}),

		panelEmpty: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prefix,
			Subsystem: "panel",
			Name:      "empty",
			Help:      "1 if the latest data fetched by the panel had no points.",
		}, []string{"panel"}),

		dsQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Subsystem: "datasource",
			Name:      "query_duration_seconds",
			Help:      "The duration of the queries made to the datasources.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"datasource", "success"}),

		dsQueryCacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Subsystem: "datasource",
			Name:      "query_cache_hits_total",
			Help:      "The number of datasource queries served from the cache.",
		}, []string{"datasource"}),
	}

	reg.MustRegister(
		r.panelFetchDuration,
		r.panelEmpty,
		r.dsQueryDuration,
		r.dsQueryCacheHits,
	)

	return r
}

func (r *recorder) ObservePanelFetch(panelID string, success bool, duration time.Duration) {
	r.panelFetchDuration.WithLabelValues(panelID, strconv.FormatBool(success)).Observe(duration.Seconds())
}

func (r *recorder) SetPanelEmpty(panelID string, empty bool) {
	v := 0.0
	if empty {
		v = 1
	}
	r.panelEmpty.WithLabelValues(panelID).Set(v)
}

func (r *recorder) ObserveDatasourceQuery(datasourceID string, success bool, duration time.Duration) {
	r.dsQueryDuration.WithLabelValues(datasourceID, strconv.FormatBool(success)).Observe(duration.Seconds())
}

func (r *recorder) IncDatasourceQueryCacheHit(datasourceID string) {
	r.dsQueryCacheHits.WithLabelValues(datasourceID).Inc()
}
