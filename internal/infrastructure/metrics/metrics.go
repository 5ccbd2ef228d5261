package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the business-level Prometheus metrics. Transport metrics
// live in the HTTP middleware.
type Metrics struct {
	// Invoice metrics
	InvoicesCreated   prometheus.Counter
	InvoicesCancelled prometheus.Counter
	InvoiceAmount     prometheus.Histogram

	// Payment metrics
	PaymentsRecorded prometheus.Counter
	PaymentAmount    prometheus.Histogram
	PaymentErrors    *prometheus.CounterVec

	// Holder metrics
	HoldersCreated prometheus.Counter

	// Note metrics
	NotesCreated prometheus.Counter
	NotesSettled prometheus.Counter

	// Reporting metrics
	StatementsBuilt   prometheus.Counter
	StatementDuration prometheus.Histogram
	AgingReportsBuilt prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Invoice metrics
		InvoicesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "arledger_invoices_created_total",
			Help: "Total number of invoices created",
		}),
		InvoicesCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "arledger_invoices_cancelled_total",
			Help: "Total number of invoices cancelled",
		}),
		InvoiceAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "arledger_invoice_amount",
			Help:    "Invoice grand totals",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Payment metrics
		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "arledger_payments_recorded_total",
			Help: "Total number of payments recorded",
		}),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "arledger_payment_amount",
			Help:    "Payment amounts",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		}),
		PaymentErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arledger_payment_errors_total",
				Help: "Total number of payment errors by type",
			},
			[]string{"error_type"},
		),

		// Holder metrics
		HoldersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "arledger_holders_created_total",
			Help: "Total number of account holders created",
		}),

		// Note metrics
		NotesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "arledger_notes_created_total",
			Help: "Total number of promissory notes created",
		}),
		NotesSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "arledger_notes_settled_total",
			Help: "Total number of promissory notes settled",
		}),

		// Reporting metrics
		StatementsBuilt: promauto.NewCounter(prometheus.CounterOpts{
			Name: "arledger_statements_built_total",
			Help: "Total number of statements built",
		}),
		StatementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "arledger_statement_duration_seconds",
			Help:    "Duration of statement builds",
			Buckets: prometheus.DefBuckets,
		}),
		AgingReportsBuilt: promauto.NewCounter(prometheus.CounterOpts{
			Name: "arledger_aging_reports_built_total",
			Help: "Total number of aging reports built",
		}),
	}
}
