package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the upstream-reported lifecycle state of an invoice.
// It is informational: paid/unpaid determinations are derived from the
// amounts, except that a "paid" status excludes the invoice from aging.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

var validInvoiceStatuses = map[InvoiceStatus]bool{
	InvoiceStatusPending:   true,
	InvoiceStatusPaid:      true,
	InvoiceStatusOverdue:   true,
	InvoiceStatusCancelled: true,
}

// IsValid checks if the status is a known invoice status.
func (s InvoiceStatus) IsValid() bool {
	return validInvoiceStatuses[s]
}

// Invoice represents a receivable invoice raised against an account holder.
type Invoice struct {
	ID            string
	HolderID      string
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       time.Time
	GrandTotal    decimal.Decimal
	PaidAmount    decimal.Decimal
	Status        InvoiceStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks structural invariants before an invoice is accepted.
func (i *Invoice) Validate() error {
	if i.HolderID == "" {
		return ErrMissingHolder
	}
	if i.InvoiceNumber == "" {
		return ErrMissingInvoiceNumber
	}
	if i.IssueDate.IsZero() {
		return ErrMissingIssueDate
	}
	if i.GrandTotal.IsNegative() {
		return ErrInvalidAmount
	}
	if !i.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// NormalizedPaid returns PaidAmount clamped into [0, GrandTotal].
// Upstream data occasionally carries negative or overshooting paid amounts;
// the ledger shields itself here instead of erroring.
func (i *Invoice) NormalizedPaid() decimal.Decimal {
	if i.PaidAmount.IsNegative() {
		return decimal.Zero
	}
	if i.PaidAmount.GreaterThan(i.GrandTotal) {
		return i.GrandTotal
	}
	return i.PaidAmount
}

// Outstanding returns the unpaid remainder, floored at zero.
func (i *Invoice) Outstanding() decimal.Decimal {
	out := i.GrandTotal.Sub(i.NormalizedPaid())
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// DaysOverdue returns whole calendar days between the due date and asOf,
// computed on UTC dates. Zero or negative means not yet due.
func (i *Invoice) DaysOverdue(asOf time.Time) int {
	return daysBetween(i.DueDate, asOf)
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
