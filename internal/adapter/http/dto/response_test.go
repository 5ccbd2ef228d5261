package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/iho/arledger/internal/domain"
)

func TestInvoiceFromDomain(t *testing.T) {
	inv := &domain.Invoice{
		ID:            "inv-1",
		HolderID:      "h-1",
		InvoiceNumber: "INV-001",
		IssueDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
		GrandTotal:    decimal.NewFromInt(100),
		PaidAmount:    decimal.NewFromInt(40),
		Status:        domain.InvoiceStatusPending,
	}

	resp := InvoiceFromDomain(inv)

	assert.Equal(t, "2024-01-15", resp.IssueDate)
	assert.Equal(t, "2024-02-14", resp.DueDate)
	assert.True(t, resp.Outstanding.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, "pending", resp.Status)
}

func TestInvoiceFromDomain_MissingDueDate(t *testing.T) {
	inv := &domain.Invoice{
		ID:         "inv-2",
		IssueDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		GrandTotal: decimal.NewFromInt(10),
		Status:     domain.InvoiceStatusPending,
	}

	resp := InvoiceFromDomain(inv)
	assert.Empty(t, resp.DueDate)
}

func TestStatementFromDomain(t *testing.T) {
	txns := []domain.Transaction{
		{
			ID:             "inv-1-inv",
			InvoiceID:      "inv-1",
			Date:           time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Kind:           domain.TransactionInvoice,
			Debit:          decimal.NewFromInt(100),
			Credit:         decimal.Zero,
			RunningBalance: decimal.NewFromInt(100),
		},
	}
	stmt := domain.NewStatement("h-1", time.Now().UTC(), txns)

	resp := StatementFromDomain(stmt)

	assert.Equal(t, "h-1", resp.HolderID)
	assert.Len(t, resp.Transactions, 1)
	assert.Equal(t, "2024-01-15", resp.Transactions[0].Date)
	assert.Equal(t, "invoice", resp.Transactions[0].Kind)
	assert.True(t, resp.ClosingBalance.Equal(decimal.NewFromInt(100)))
}

func TestAgingReportFromDomain(t *testing.T) {
	report := domain.BuildAgingReport([]*domain.Invoice{
		{
			ID:         "inv-1",
			IssueDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			DueDate:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			GrandTotal: decimal.NewFromInt(100),
			Status:     domain.InvoiceStatusPending,
		},
		{
			ID:         "inv-2",
			IssueDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			GrandTotal: decimal.NewFromInt(50),
			Status:     domain.InvoiceStatusPending,
		},
	}, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))

	resp := AgingReportFromDomain(report)

	assert.Equal(t, "2024-02-15", resp.AsOf)
	assert.Len(t, resp.Buckets, 5)
	assert.Equal(t, "1-30", resp.Buckets[1].Label)
	assert.True(t, resp.Buckets[1].Amount.Equal(decimal.NewFromInt(100)))
	assert.Len(t, resp.Skipped, 1)
	assert.Equal(t, "inv-2", resp.Skipped[0].ID)
}
