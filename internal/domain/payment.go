package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a dated collection recorded against one invoice.
type Payment struct {
	ID        string
	InvoiceID string
	HolderID  string
	Amount    decimal.Decimal
	PaidAt    time.Time
	Method    string
	Reference string
	CreatedAt time.Time
}

// Validate checks a payment before it is recorded.
func (p *Payment) Validate() error {
	if p.InvoiceID == "" {
		return ErrInvoiceNotFound
	}
	if !p.Amount.IsPositive() {
		return ErrPaymentNotPositive
	}
	return nil
}
