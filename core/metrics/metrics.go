package metrics

import (
	"net/http"
	"time"

	"rinksync/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the sync service. A
// custom registry keeps the scrape output down to what this service
// actually reports.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal          *prometheus.CounterVec
	actionsTotal       *prometheus.CounterVec
	actionFailures     prometheus.Counter
	identityCollisions prometheus.Counter
	duplicateTargets   prometheus.Counter
	runDuration        prometheus.Histogram
	lastRunUnix        prometheus.Gauge
	managedEvents      prometheus.Gauge
}

// New creates a metrics set on its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Metrics{
		registry: registry,

		runsTotal: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rinksync",
			Name:      "runs_total",
			Help:      "Reconciliation runs by outcome (ok, failed).",
		}, []string{"outcome"}),

		actionsTotal: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rinksync",
			Name:      "actions_total",
			Help:      "Planned calendar mutations by kind.",
		}, []string{"kind"}),

		actionFailures: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "rinksync",
			Name:      "action_failures_total",
			Help:      "Calendar mutations that failed during apply.",
		}),

		identityCollisions: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "rinksync",
			Name:      "identity_collisions_total",
			Help:      "Feed event pairs sharing a derived identity (hash-quality signal).",
		}),

		duplicateTargets: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "rinksync",
			Name:      "duplicate_targets_total",
			Help:      "Calendar events protected from deletion but not claimed as primary match.",
		}),

		runDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rinksync",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full reconciliation run.",
			Buckets:   prometheus.DefBuckets,
		}),

		lastRunUnix: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: "rinksync",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run.",
		}),

		managedEvents: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: "rinksync",
			Name:      "managed_events",
			Help:      "Managed events present in the calendar window at the last run.",
		}),
	}
}

// RecordRun updates all instruments from one finished run.
func (m *Metrics) RecordRun(result reconcile.Result, managed int, duration time.Duration) {
	m.runsTotal.WithLabelValues("ok").Inc()
	m.actionsTotal.WithLabelValues("create").Add(float64(result.Created))
	m.actionsTotal.WithLabelValues("update").Add(float64(result.Updated))
	m.actionsTotal.WithLabelValues("migrate").Add(float64(result.Migrated))
	m.actionsTotal.WithLabelValues("delete").Add(float64(result.Removed))
	m.actionFailures.Add(float64(result.Failed))
	m.identityCollisions.Add(float64(result.SourceCollisions))
	m.duplicateTargets.Add(float64(result.DuplicateTargets))
	m.runDuration.Observe(duration.Seconds())
	m.lastRunUnix.SetToCurrentTime()
	m.managedEvents.Set(float64(managed))
}

// RecordFailure counts a run that aborted before classification.
func (m *Metrics) RecordFailure() {
	m.runsTotal.WithLabelValues("failed").Inc()
}

// Handler returns the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
