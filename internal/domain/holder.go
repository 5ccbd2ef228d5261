package domain

import "time"

// AccountHolder is the customer or counterparty whose invoices and payments
// are aggregated into one receivables ledger.
type AccountHolder struct {
	ID        string
	Name      string
	TaxNumber string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
