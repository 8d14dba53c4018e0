// Package metrics exposes Prometheus counters for the audit trail.
//
// Counters are labelled by lifecycle action only: created, updated, deleted
// or restored.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Audit holds the audit trail counters.
type Audit struct {
	// EntriesTotal counts entries appended to the trail, by action.
	EntriesTotal *prometheus.CounterVec
	// FailuresTotal counts audit attempts that were dropped, by action.
	FailuresTotal *prometheus.CounterVec
}

// NewAudit creates the audit counters and registers them with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewAudit(reg prometheus.Registerer) *Audit {
	m := &Audit{
		EntriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audit_entries_total",
				Help: "Total number of audit trail entries written, by action.",
			},
			[]string{"action"},
		),
		FailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audit_failures_total",
				Help: "Total number of audit trail writes that failed and were dropped, by action.",
			},
			[]string{"action"},
		),
	}
	reg.MustRegister(m.EntriesTotal, m.FailuresTotal)
	return m
}

// Written records a successful append.
func (m *Audit) Written(action string) {
	if m == nil {
		return
	}
	m.EntriesTotal.WithLabelValues(action).Inc()
}

// Failed records a dropped audit attempt.
func (m *Audit) Failed(action string) {
	if m == nil {
		return
	}
	m.FailuresTotal.WithLabelValues(action).Inc()
}
