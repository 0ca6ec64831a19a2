package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	JournalsCreated prometheus.Counter
	JournalsPosted  prometheus.Counter
	JournalsFlagged prometheus.Counter
	PostingDuration prometheus.Histogram
	PostingErrors   *prometheus.CounterVec
	ImbalanceAmount prometheus.Histogram
	RecurrenceNotes prometheus.Counter

	// Allocation metrics
	AllocationsComputed prometheus.Counter
	AllocationDuration  prometheus.Histogram
	AllocationLines     prometheus.Histogram
	FlaggedLines        prometheus.Counter
	Unreconciled        prometheus.Counter

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Audit metrics
	AuditRecordsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Posting metrics
		JournalsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propledger_journals_created_total",
			Help: "Total number of draft journals created",
		}),
		JournalsPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propledger_journals_posted_total",
			Help: "Total number of journals posted",
		}),
		JournalsFlagged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propledger_journals_flagged_total",
			Help: "Total number of journals flagged for imbalance",
		}),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "propledger_posting_duration_seconds",
			Help:    "Duration of journal posting decisions",
			Buckets: prometheus.DefBuckets,
		}),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propledger_posting_errors_total",
				Help: "Total number of posting errors by type",
			},
			[]string{"error_type"},
		),
		ImbalanceAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "propledger_imbalance_minor_units",
			Help:    "Absolute imbalance of flagged journals in minor units",
			Buckets: []float64{1, 100, 1000, 10000, 100000, 1000000},
		}),
		RecurrenceNotes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propledger_recurrence_advisories_total",
			Help: "Total number of recurrence advisory notes attached to flags",
		}),

		// Allocation metrics
		AllocationsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propledger_allocations_computed_total",
			Help: "Total number of allocation previews computed",
		}),
		AllocationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "propledger_allocation_duration_seconds",
			Help:    "Duration of allocation computations",
			Buckets: prometheus.DefBuckets,
		}),
		AllocationLines: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "propledger_allocation_lines",
			Help:    "Number of lines per allocation",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),
		FlaggedLines: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propledger_allocation_flagged_lines_total",
			Help: "Total number of allocation lines flagged for missing basis",
		}),
		Unreconciled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propledger_allocations_unreconciled_total",
			Help: "Total number of allocations that could not reconcile",
		}),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propledger_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "propledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "propledger_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "propledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Audit metrics
		AuditRecordsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propledger_audit_records_total",
				Help: "Total audit records created",
			},
			[]string{"action", "outcome"},
		),
	}
}
