package loader

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of a Loader. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	fetches      *prometheus.CounterVec // By reader
	fetchErrors  *prometheus.CounterVec // By reader
	fallbacks    prometheus.Counter
	imports      *prometheus.CounterVec // By outcome
	warnings     prometheus.Counter
	loads        *prometheus.CounterVec // By status
	loadDuration prometheus.Histogram
}

// NewMetrics creates the loader collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer, component string) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}
	labels := prometheus.Labels{"component": component}
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "semontology",
			Subsystem:   "loader",
			Name:        "fetches_total",
			Help:        "Documents obtained, by reader",
			ConstLabels: labels,
		}, []string{"reader"}), // reader: primary, secondary, resident, passthrough

		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "semontology",
			Subsystem:   "loader",
			Name:        "fetch_errors_total",
			Help:        "Failed document reads, by reader",
			ConstLabels: labels,
		}, []string{"reader"}),

		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "semontology",
			Subsystem:   "loader",
			Name:        "fallbacks_total",
			Help:        "Reads retried with the secondary reader",
			ConstLabels: labels,
		}),

		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "semontology",
			Subsystem:   "loader",
			Name:        "imports_total",
			Help:        "Import declarations processed, by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}), // outcome: resolved, merged, cycle, ignored, missing, failed

		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "semontology",
			Subsystem:   "loader",
			Name:        "warnings_total",
			Help:        "Import failures downgraded to warnings",
			ConstLabels: labels,
		}),

		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "semontology",
			Subsystem:   "loader",
			Name:        "loads_total",
			Help:        "Top-level loads, by status",
			ConstLabels: labels,
		}, []string{"status"}),

		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "semontology",
			Subsystem:   "loader",
			Name:        "load_duration_seconds",
			Help:        "Duration of top-level loads in seconds",
			ConstLabels: labels,
			Buckets:     []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		}),
	}

	for _, c := range []prometheus.Collector{
		m.fetches, m.fetchErrors, m.fallbacks, m.imports, m.warnings, m.loads, m.loadDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register loader metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) fetched(reader string) {
	if m != nil {
		m.fetches.WithLabelValues(reader).Inc()
	}
}

func (m *Metrics) fetchFailed(reader string) {
	if m != nil {
		m.fetchErrors.WithLabelValues(reader).Inc()
	}
}

func (m *Metrics) fellBack() {
	if m != nil {
		m.fallbacks.Inc()
	}
}

func (m *Metrics) importOutcome(outcome string) {
	if m != nil {
		m.imports.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) warned() {
	if m != nil {
		m.warnings.Inc()
	}
}

func (m *Metrics) loadDone(start time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.loads.WithLabelValues(status).Inc()
	m.loadDuration.Observe(time.Since(start).Seconds())
}
