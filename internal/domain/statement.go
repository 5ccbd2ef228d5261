package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is the full receivables ledger of one account holder at a point
// in time. It is derived output: recomputed from the current invoice and
// payment records on every request, never stored.
type Statement struct {
	HolderID       string
	GeneratedAt    time.Time
	Transactions   []Transaction
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	ClosingBalance decimal.Decimal
}

// NewStatement wraps a transaction ledger with its totals.
func NewStatement(holderID string, generatedAt time.Time, txns []Transaction) *Statement {
	s := &Statement{
		HolderID:     holderID,
		GeneratedAt:  generatedAt,
		Transactions: txns,
		TotalDebit:   decimal.Zero,
		TotalCredit:  decimal.Zero,
	}
	for _, t := range txns {
		s.TotalDebit = s.TotalDebit.Add(t.Debit)
		s.TotalCredit = s.TotalCredit.Add(t.Credit)
	}
	if len(txns) > 0 {
		s.ClosingBalance = txns[len(txns)-1].RunningBalance
	} else {
		s.ClosingBalance = decimal.Zero
	}
	return s
}
