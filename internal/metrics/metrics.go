package metrics

import "github.com/prometheus/client_golang/prometheus"

// LedgerMetrics counts booking commands and snapshot writes.
type LedgerMetrics struct {
	commands    *prometheus.CounterVec
	saveLatency *prometheus.HistogramVec
}

func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	m := &LedgerMetrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medpulse",
			Subsystem: "ledger",
			Name:      "commands_total",
			Help:      "Ledger commands by operation and outcome",
		}, []string{"op", "outcome"}),
		saveLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medpulse",
			Subsystem: "ledger",
			Name:      "snapshot_save_seconds",
			Help:      "Latency of full-snapshot persistence",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.commands, m.saveLatency)
	return m
}

func (m *LedgerMetrics) ObserveCommand(op, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(op, outcome).Inc()
}

func (m *LedgerMetrics) ObserveSave(seconds float64, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.saveLatency.WithLabelValues(status).Observe(seconds)
}
