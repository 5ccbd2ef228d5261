package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoteStatus is the lifecycle state of a promissory note.
type NoteStatus string

const (
	NoteStatusOutstanding NoteStatus = "outstanding"
	NoteStatusSettled     NoteStatus = "settled"
	NoteStatusDefaulted   NoteStatus = "defaulted"
)

// PromissoryNote is a note receivable held against an account holder. Notes
// carry their own due dates and are aged with the same buckets as invoices.
type PromissoryNote struct {
	ID            string
	HolderID      string
	NoteNumber    string
	IssueDate     time.Time
	DueDate       time.Time
	Amount        decimal.Decimal
	SettledAmount decimal.Decimal
	Status        NoteStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks structural invariants before a note is accepted.
func (n *PromissoryNote) Validate() error {
	if n.HolderID == "" {
		return ErrMissingHolder
	}
	if n.NoteNumber == "" {
		return ErrMissingNoteNumber
	}
	if n.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	if n.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// Outstanding returns the unsettled remainder, floored at zero.
func (n *PromissoryNote) Outstanding() decimal.Decimal {
	settled := n.SettledAmount
	if settled.IsNegative() {
		settled = decimal.Zero
	}
	out := n.Amount.Sub(settled)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}
