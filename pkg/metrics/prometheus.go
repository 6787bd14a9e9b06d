// Package metrics provides Prometheus metrics for a scoreboard run.
//
// The tool is a one-shot batch, so metrics are not scraped; they are
// gathered at the end of a run and optionally written in the node_exporter
// textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the collectors for one registry.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer
	gatherer         prometheus.Gatherer

	votes            *prometheus.CounterVec
	pointsAwarded    prometheus.Counter
	roundsProcessed  prometheus.Counter
	disqualified     prometheus.Counter
	roundLatency     prometheus.Histogram
	entryCount       prometheus.Gauge
	voterCount       prometheus.Gauge
	reportsWritten   *prometheus.CounterVec
	errorsByCategory *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level helpers

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry shared by the singleton

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init replaces the global manager with one built from opts on a fresh
// registry, dropping everything recorded so far. Call it before a run
// starts recording.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	customRegistry = registry
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scoreboard",
		subsystem:        "contest",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100},
		registry:         prometheus.DefaultRegisterer,
		gatherer:         prometheus.DefaultGatherer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.votes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "votes_total",
		Help:        "Vote tokens applied, by classified kind",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.pointsAwarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "points_awarded_total",
		Help:        "Sum of all integer points applied, including those given to disqualified entries",
		ConstLabels: m.constLabels,
	})

	m.roundsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rounds_processed_total",
		Help:        "Voter rounds applied to the contest",
		ConstLabels: m.constLabels,
	})

	m.disqualified = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "disqualifications_total",
		Help:        "Entries that became disqualified",
		ConstLabels: m.constLabels,
	})

	m.roundLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "round_duration_milliseconds",
		Help:        "Time spent applying one voter round and ranking the entries",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.entryCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "entries",
		Help:        "Entries in the loaded contest",
		ConstLabels: m.constLabels,
	})

	m.voterCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "voters",
		Help:        "Voters in the loaded contest",
		ConstLabels: m.constLabels,
	})

	m.reportsWritten = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reports_written_total",
		Help:        "Leaderboard reports written, by format",
		ConstLabels: m.constLabels,
	}, []string{"format"})

	m.errorsByCategory = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_total",
		Help:        "Errors by component and type",
		ConstLabels: m.constLabels,
	}, []string{"component", "type"})
}

// RecordVote counts one applied vote token under the kind label and adds
// positive points to the points total.
func (m *Manager) RecordVote(kind string, points int) {
	m.votes.WithLabelValues(kind).Inc()
	if points > 0 {
		m.pointsAwarded.Add(float64(points))
	}
}

// RecordRoundProcessed counts a finished voter round and its latency.
func (m *Manager) RecordRoundProcessed(latencyMs float64) {
	m.roundsProcessed.Inc()
	m.roundLatency.Observe(latencyMs)
}

// RecordDisqualification counts an entry newly marked as disqualified.
func (m *Manager) RecordDisqualification() { m.disqualified.Inc() }

// UpdateContestSize sets the entry and voter gauges.
func (m *Manager) UpdateContestSize(entries, voters int) {
	m.entryCount.Set(float64(entries))
	m.voterCount.Set(float64(voters))
}

// RecordReportWritten counts a rendered report.
func (m *Manager) RecordReportWritten(format string) {
	m.reportsWritten.WithLabelValues(format).Inc()
}

// RecordError counts an error attributed to a component.
func (m *Manager) RecordError(component, errorType string) {
	m.errorsByCategory.WithLabelValues(component, errorType).Inc()
}

// WriteTextfile writes every metric gathered from the manager's registry to
// path in the Prometheus text exposition format.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// Package-level helpers operating on the global manager.

// RecordVote counts one applied vote token of the given kind.
func RecordVote(kind string, points int) { globalManager.RecordVote(kind, points) }

// RecordRoundProcessed counts a finished voter round and its latency.
func RecordRoundProcessed(latencyMs float64) { globalManager.RecordRoundProcessed(latencyMs) }

// RecordDisqualification counts an entry newly marked as disqualified.
func RecordDisqualification() { globalManager.RecordDisqualification() }

// UpdateContestSize sets the entry and voter gauges.
func UpdateContestSize(entries, voters int) { globalManager.UpdateContestSize(entries, voters) }

// RecordReportWritten counts a rendered report.
func RecordReportWritten(format string) { globalManager.RecordReportWritten(format) }

// RecordError counts an error attributed to a component.
func RecordError(component, errorType string) { globalManager.RecordError(component, errorType) }

// WriteTextfile exports the global registry to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }
