// Package metrics exposes Prometheus collectors for dataset loads and view renders.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/covid-dashboard/internal/covid"
)

const namespace = "covid_dashboard"

// Metrics owns its registry so tests can build independent instances.
type Metrics struct {
	registry *prometheus.Registry

	loads        *prometheus.CounterVec
	loadDuration prometheus.Histogram
	rows         prometheus.Gauge
	latestDate   prometheus.Gauge
	renders      *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by source and result.",
		}, []string{"source", "result"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Time spent fetching, parsing and aggregating the dataset.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Cleaned daily rows in the current dataset.",
		}),
		latestDate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_latest_date_seconds",
			Help:      "Unix time of the most recent date in the current dataset.",
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_renders_total",
			Help:      "Rendered dashboard views by view id and format.",
		}, []string{"view", "format"}),
	}

	reg.MustRegister(
		m.loads,
		m.loadDuration,
		m.rows,
		m.latestDate,
		m.renders,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveLoad implements covid.Observer.
func (m *Metrics) ObserveLoad(info covid.LoadInfo, err error) {
	if err != nil {
		m.loads.WithLabelValues(info.Source, "error").Inc()
		return
	}
	m.loads.WithLabelValues(info.Source, "ok").Inc()
	m.loadDuration.Observe(info.Duration.Seconds())
	m.rows.Set(float64(info.Rows))
	if !info.LatestDate.IsZero() {
		m.latestDate.Set(float64(info.LatestDate.Unix()))
	}
}

// ObserveRender counts one rendered view.
func (m *Metrics) ObserveRender(view covid.ViewID, format string) {
	m.renders.WithLabelValues(string(view), format).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
