package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Ledger metrics
	EntriesWritten    *prometheus.CounterVec
	MutationDuration  *prometheus.HistogramVec
	MutationErrors    *prometheus.CounterVec
	ConflictRetries   prometheus.Counter
	TransfersApplied  prometheus.Counter
	WagersSettled     *prometheus.CounterVec
	AccountsCreated   prometheus.Counter

	// Settlement metrics
	RequestsCreated  *prometheus.CounterVec
	RequestsResolved *prometheus.CounterVec

	// Reconciliation metrics
	ReconciliationRuns  prometheus.Counter
	ReconciliationDrift *prometheus.GaugeVec
	DriftAlarms         prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		EntriesWritten: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgercore_entries_written_total",
				Help: "Total audit entries written by kind",
			},
			[]string{"kind"},
		),
		MutationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledgercore_mutation_duration_seconds",
				Help:    "Duration of balance mutations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		MutationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgercore_mutation_errors_total",
				Help: "Total mutation errors by type",
			},
			[]string{"error_type"},
		),
		ConflictRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgercore_conflict_retries_total",
			Help: "Total optimistic concurrency conflicts retried",
		}),
		TransfersApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgercore_transfers_applied_total",
			Help: "Total peer transfers applied",
		}),
		WagersSettled: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgercore_wagers_settled_total",
				Help: "Total wagers settled by outcome",
			},
			[]string{"outcome"},
		),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgercore_accounts_created_total",
			Help: "Total accounts created",
		}),

		RequestsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgercore_settlement_requests_created_total",
				Help: "Total settlement requests created by direction",
			},
			[]string{"direction"},
		),
		RequestsResolved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgercore_settlement_requests_resolved_total",
				Help: "Total settlement requests resolved by outcome",
			},
			[]string{"status"},
		),

		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgercore_reconciliation_runs_total",
			Help: "Total reconciliation sweeps",
		}),
		ReconciliationDrift: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ledgercore_reconciliation_drift",
				Help: "Stored minus replayed balance per account",
			},
			[]string{"account_id"},
		),
		DriftAlarms: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgercore_drift_alarms_total",
			Help: "Total non-zero drift observations",
		}),
	}
}

// RecordSweep implements usecase.DriftRecorder.
func (m *Metrics) RecordSweep() {
	m.ReconciliationRuns.Inc()
}

// RecordDrift implements usecase.DriftRecorder.
func (m *Metrics) RecordDrift(accountID string, drift decimal.Decimal) {
	f, _ := drift.Float64()
	m.ReconciliationDrift.WithLabelValues(accountID).Set(f)

	if !drift.IsZero() {
		m.DriftAlarms.Inc()
	}
}
