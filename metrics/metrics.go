// Package metrics counts simulation runs on a private Prometheus registry.
// A batch CLI has no scrape endpoint, so results are written in the
// node_exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rustyeddy/hedger/ledger"
)

const namespace = "hedger"

type Metrics struct {
	registry        *prometheus.Registry
	runs            prometheus.Counter
	rolls           prometheus.Counter
	days            prometheus.Counter
	numericalErrors prometheus.Counter
	finalValue      prometheus.Gauge
	returnPct       prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of completed simulation runs.",
		}),
		rolls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rolls_total",
			Help:      "Total number of runs in which the put was rolled.",
		}),
		days: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "days_simulated_total",
			Help:      "Total number of simulated days across runs.",
		}),
		numericalErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "numerical_errors_total",
			Help:      "Total number of runs aborted by a non-finite value.",
		}),
		finalValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "final_position_value",
			Help:      "Total position value on the last day of the latest run.",
		}),
		returnPct: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "return_percent",
			Help:      "Return on the initial position of the latest run, in percent.",
		}),
	}
	m.registry.MustRegister(m.runs, m.rolls, m.days, m.numericalErrors, m.finalValue, m.returnPct)
	return m
}

// Observe records a completed run.
func (m *Metrics) Observe(s ledger.Summary) {
	m.runs.Inc()
	m.days.Add(float64(s.Days))
	if s.RollDay >= 0 {
		m.rolls.Inc()
	}
	m.finalValue.Set(s.FinalValue)
	if s.HasReturn {
		m.returnPct.Set(s.ReturnPct)
	}
}

// ObserveFailure records a run aborted after days completed days.
func (m *Metrics) ObserveFailure(days int) {
	m.numericalErrors.Inc()
	m.days.Add(float64(days))
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes every metric to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
