package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/infrastructure/metrics"
)

// InvoiceUseCase handles invoice business logic.
type InvoiceUseCase struct {
	txManager   TransactionManager
	invoiceRepo InvoiceRepository
	holderRepo  HolderRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewInvoiceUseCase creates a new InvoiceUseCase. metrics may be nil.
func NewInvoiceUseCase(
	txManager TransactionManager,
	invoiceRepo InvoiceRepository,
	holderRepo HolderRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		holderRepo:  holderRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		metrics:     m,
	}
}

// CreateInvoiceInput represents input for creating an invoice.
type CreateInvoiceInput struct {
	HolderID      string
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       time.Time
	GrandTotal    decimal.Decimal
	PaidAmount    decimal.Decimal
}

// CreateInvoice creates a new invoice and records an outbox event in the
// same transaction.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	if _, err := uc.holderRepo.GetByID(ctx, input.HolderID); err != nil {
		return nil, err
	}
	if err := domain.ValidateDocumentAmount(input.GrandTotal); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	invoice := &domain.Invoice{
		ID:            uc.idGen.Generate(),
		HolderID:      input.HolderID,
		InvoiceNumber: input.InvoiceNumber,
		IssueDate:     input.IssueDate,
		DueDate:       input.DueDate,
		GrandTotal:    input.GrandTotal,
		PaidAmount:    input.PaidAmount,
		Status:        domain.InvoiceStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if invoice.Outstanding().IsZero() && invoice.GrandTotal.IsPositive() {
		invoice.Status = domain.InvoiceStatusPaid
	}

	if err := invoice.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.invoiceRepo.Create(ctx, tx, invoice); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   invoice.ID,
		AggregateType: domain.AggregateTypeInvoice,
		EventType:     domain.EventTypeInvoiceCreated,
		Payload: map[string]any{
			"invoice_id":     invoice.ID,
			"holder_id":      invoice.HolderID,
			"invoice_number": invoice.InvoiceNumber,
			"grand_total":    invoice.GrandTotal.String(),
			"due_date":       invoice.DueDate.Format(domain.DateLayout),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InvoicesCreated.Inc()
		total, _ := invoice.GrandTotal.Float64()
		uc.metrics.InvoiceAmount.Observe(total)
	}

	return invoice, nil
}

// GetInvoice retrieves an invoice by ID.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return uc.invoiceRepo.GetByID(ctx, id)
}

// ListInvoicesByHolderInput represents input for listing a holder's invoices.
type ListInvoicesByHolderInput struct {
	HolderID string
	Limit    int
	Offset   int
}

// ListInvoicesByHolder lists invoices of one account holder.
func (uc *InvoiceUseCase) ListInvoicesByHolder(ctx context.Context, input ListInvoicesByHolderInput) ([]*domain.Invoice, error) {
	return uc.invoiceRepo.ListByHolder(ctx, input.HolderID, clampPage(input.Limit), input.Offset)
}

// CancelInvoice marks an invoice as cancelled.
func (uc *InvoiceUseCase) CancelInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	invoice, err := uc.invoiceRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoiceStatusCancelled {
		return nil, domain.ErrInvoiceCancelled
	}

	now := time.Now().UTC()

	if err := uc.invoiceRepo.UpdateStatus(ctx, tx, id, domain.InvoiceStatusCancelled, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   invoice.ID,
		AggregateType: domain.AggregateTypeInvoice,
		EventType:     domain.EventTypeInvoiceCancelled,
		Payload: map[string]any{
			"invoice_id": invoice.ID,
			"holder_id":  invoice.HolderID,
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InvoicesCancelled.Inc()
	}

	invoice.Status = domain.InvoiceStatusCancelled
	invoice.UpdatedAt = now

	return invoice, nil
}
