package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes ledger transaction rows.
type TransactionKind string

const (
	TransactionInvoice TransactionKind = "invoice"
	TransactionPayment TransactionKind = "payment"
)

// Transaction is one row of a holder's statement: a debit raised by an
// invoice or a credit collected against it, with the balance after applying
// it. Transactions are derived, never persisted.
type Transaction struct {
	ID             string
	InvoiceID      string
	Date           time.Time
	Kind           TransactionKind
	Description    string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	RunningBalance decimal.Decimal
}

// BuildLedger converts a holder's invoices into a chronologically ordered
// transaction list with running balance. Invoices are sorted by issue date,
// ties broken by ID, so the result is deterministic for identical input.
// Payments carried on the invoice record have no date of their own and are
// attributed to the issue date.
func BuildLedger(invoices []*Invoice) []Transaction {
	sorted := sortInvoices(invoices)

	txns := make([]Transaction, 0, len(sorted)*2)
	balance := decimal.Zero

	for _, inv := range sorted {
		balance = balance.Add(inv.GrandTotal)
		txns = append(txns, Transaction{
			ID:             inv.ID + "-inv",
			InvoiceID:      inv.ID,
			Date:           inv.IssueDate,
			Kind:           TransactionInvoice,
			Description:    "Invoice " + inv.InvoiceNumber,
			Debit:          inv.GrandTotal,
			Credit:         decimal.Zero,
			RunningBalance: balance,
		})

		paid := inv.NormalizedPaid()
		if paid.IsPositive() {
			balance = balance.Sub(paid)
			txns = append(txns, Transaction{
				ID:             inv.ID + "-pay",
				InvoiceID:      inv.ID,
				Date:           inv.IssueDate,
				Kind:           TransactionPayment,
				Description:    "Payment for invoice " + inv.InvoiceNumber,
				Debit:          decimal.Zero,
				Credit:         paid,
				RunningBalance: balance,
			})
		}
	}

	return txns
}

// BuildLedgerWithPayments builds the same ledger but threads real payment
// dates through when dated payment rows exist for an invoice. Invoices
// without payment rows fall back to the invoice-date approximation of
// BuildLedger. The result is ordered by date; an invoice transaction always
// precedes payments of the same invoice on the same date.
func BuildLedgerWithPayments(invoices []*Invoice, payments []*Payment) []Transaction {
	sorted := sortInvoices(invoices)

	byInvoice := make(map[string][]*Payment)
	for _, p := range payments {
		if p.Amount.IsPositive() {
			byInvoice[p.InvoiceID] = append(byInvoice[p.InvoiceID], p)
		}
	}
	for _, ps := range byInvoice {
		sort.SliceStable(ps, func(a, b int) bool {
			if !ps[a].PaidAt.Equal(ps[b].PaidAt) {
				return ps[a].PaidAt.Before(ps[b].PaidAt)
			}
			return ps[a].ID < ps[b].ID
		})
	}

	type event struct {
		txn  Transaction
		date time.Time
		ord  int
	}

	events := make([]event, 0, len(sorted)*2)
	for i, inv := range sorted {
		ord := i * 1000
		events = append(events, event{
			txn: Transaction{
				ID:          inv.ID + "-inv",
				InvoiceID:   inv.ID,
				Date:        inv.IssueDate,
				Kind:        TransactionInvoice,
				Description: "Invoice " + inv.InvoiceNumber,
				Debit:       inv.GrandTotal,
				Credit:      decimal.Zero,
			},
			date: inv.IssueDate,
			ord:  ord,
		})

		rows := byInvoice[inv.ID]
		if len(rows) == 0 {
			paid := inv.NormalizedPaid()
			if paid.IsPositive() {
				events = append(events, event{
					txn: Transaction{
						ID:          inv.ID + "-pay",
						InvoiceID:   inv.ID,
						Date:        inv.IssueDate,
						Kind:        TransactionPayment,
						Description: "Payment for invoice " + inv.InvoiceNumber,
						Debit:       decimal.Zero,
						Credit:      paid,
					},
					date: inv.IssueDate,
					ord:  ord + 1,
				})
			}
			continue
		}

		for j, p := range rows {
			date := p.PaidAt
			if date.IsZero() {
				date = inv.IssueDate
			}
			events = append(events, event{
				txn: Transaction{
					ID:          p.ID + "-pay",
					InvoiceID:   inv.ID,
					Date:        date,
					Kind:        TransactionPayment,
					Description: "Payment for invoice " + inv.InvoiceNumber,
					Debit:       decimal.Zero,
					Credit:      p.Amount,
				},
				date: date,
				ord:  ord + 1 + j,
			})
		}
	}

	sort.SliceStable(events, func(a, b int) bool {
		da, db := dateOnly(events[a].date), dateOnly(events[b].date)
		if !da.Equal(db) {
			return da.Before(db)
		}
		return events[a].ord < events[b].ord
	})

	txns := make([]Transaction, 0, len(events))
	balance := decimal.Zero
	for _, ev := range events {
		balance = balance.Add(ev.txn.Debit).Sub(ev.txn.Credit)
		ev.txn.RunningBalance = balance
		txns = append(txns, ev.txn)
	}

	return txns
}

func sortInvoices(invoices []*Invoice) []*Invoice {
	sorted := make([]*Invoice, len(invoices))
	copy(sorted, invoices)
	sort.SliceStable(sorted, func(a, b int) bool {
		if !sorted[a].IssueDate.Equal(sorted[b].IssueDate) {
			return sorted[a].IssueDate.Before(sorted[b].IssueDate)
		}
		return sorted[a].ID < sorted[b].ID
	})
	return sorted
}
