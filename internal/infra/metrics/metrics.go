package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики по доменам; label domain: finance | inventory | payroll.
var (
	RecordsAdded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "whiplash_records_added_total",
		Help: "Records added per domain.",
	}, []string{"domain"})

	ClockActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "whiplash_clock_actions_total",
		Help: "Clock-in/clock-out actions.",
	}, []string{"action"})

	ReportsExported = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "whiplash_reports_exported_total",
		Help: "Reports generated per domain.",
	}, []string{"domain"})

	PersistenceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "whiplash_persistence_failures_total",
		Help: "Failed key-value store writes.",
	})
)
