package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Aging bucket labels, ordered from not-yet-due to most overdue.
const (
	BucketCurrent = "current"
	Bucket1To30   = "1-30"
	Bucket31To60  = "31-60"
	Bucket61To90  = "61-90"
	BucketOver90  = "90+"
)

// BucketLabels lists the five aging buckets in report order.
var BucketLabels = []string{BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, BucketOver90}

// AgingBucket holds the outstanding total for one overdue-age range.
type AgingBucket struct {
	Label  string
	Amount decimal.Decimal
}

// SkippedDocument records a document that could not be aged and why.
type SkippedDocument struct {
	ID     string
	Reason string
}

// AgingReport buckets all outstanding debt by how overdue it is as of a
// single reference date. The report always carries all five buckets,
// zero-valued ones included.
type AgingReport struct {
	AsOf             time.Time
	Buckets          []AgingBucket
	TotalOutstanding decimal.Decimal
	Skipped          []SkippedDocument
}

// BuildAgingReport buckets the outstanding amount of each unpaid invoice by
// its overdue age as of asOf. Invoices with a paid status or nothing
// outstanding contribute nothing. An invoice with no due date cannot be aged;
// it is skipped and reported rather than failing the whole computation.
func BuildAgingReport(invoices []*Invoice, asOf time.Time) AgingReport {
	report := newAgingReport(asOf)

	for _, inv := range invoices {
		if inv.Status == InvoiceStatusPaid {
			continue
		}
		outstanding := inv.Outstanding()
		if !outstanding.IsPositive() {
			continue
		}
		if inv.DueDate.IsZero() {
			report.Skipped = append(report.Skipped, SkippedDocument{
				ID:     inv.ID,
				Reason: "missing due date",
			})
			continue
		}

		report.add(inv.DaysOverdue(asOf), outstanding)
	}

	return report
}

// BuildNoteAgingReport ages promissory notes with the same bucket boundaries
// used for invoices.
func BuildNoteAgingReport(notes []*PromissoryNote, asOf time.Time) AgingReport {
	report := newAgingReport(asOf)

	for _, note := range notes {
		if note.Status == NoteStatusSettled {
			continue
		}
		outstanding := note.Outstanding()
		if !outstanding.IsPositive() {
			continue
		}
		if note.DueDate.IsZero() {
			report.Skipped = append(report.Skipped, SkippedDocument{
				ID:     note.ID,
				Reason: "missing due date",
			})
			continue
		}

		report.add(daysBetween(note.DueDate, asOf), outstanding)
	}

	return report
}

func newAgingReport(asOf time.Time) AgingReport {
	buckets := make([]AgingBucket, len(BucketLabels))
	for i, label := range BucketLabels {
		buckets[i] = AgingBucket{Label: label, Amount: decimal.Zero}
	}
	return AgingReport{
		AsOf:             asOf,
		Buckets:          buckets,
		TotalOutstanding: decimal.Zero,
	}
}

func (r *AgingReport) add(daysOverdue int, outstanding decimal.Decimal) {
	i := bucketIndex(daysOverdue)
	r.Buckets[i].Amount = r.Buckets[i].Amount.Add(outstanding)
	r.TotalOutstanding = r.TotalOutstanding.Add(outstanding)
}

// bucketIndex maps an overdue age in days onto a bucket. The ranges are
// half-open and exhaustive: every age lands in exactly one bucket.
func bucketIndex(daysOverdue int) int {
	switch {
	case daysOverdue <= 0:
		return 0
	case daysOverdue <= 30:
		return 1
	case daysOverdue <= 60:
		return 2
	case daysOverdue <= 90:
		return 3
	default:
		return 4
	}
}
