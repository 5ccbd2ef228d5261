package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/infrastructure/metrics"
)

// PaymentUseCase records collections against invoices.
type PaymentUseCase struct {
	txManager   TransactionManager
	invoiceRepo InvoiceRepository
	paymentRepo PaymentRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
	statements  *StatementUseCase
	metrics     *metrics.Metrics
}

// NewPaymentUseCase creates a new PaymentUseCase. metrics may be nil.
func NewPaymentUseCase(
	txManager TransactionManager,
	invoiceRepo InvoiceRepository,
	paymentRepo PaymentRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	statements *StatementUseCase,
	m *metrics.Metrics,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		retrier:     retrier,
		statements:  statements,
		metrics:     m,
	}
}

// RecordPaymentInput represents input for recording a payment.
type RecordPaymentInput struct {
	InvoiceID string
	Amount    decimal.Decimal
	PaidAt    *time.Time
	Method    string
	Reference string
}

// RecordPayment records a payment against an invoice: the payment row, the
// invoice's paid amount and status, and the outbox event commit atomically.
// The write is retried on transient storage conflicts.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrPaymentNotPositive
	}

	var payment *domain.Payment

	run := func() error {
		p, err := uc.recordPayment(ctx, input)
		if err != nil {
			return err
		}
		payment = p
		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, run)
	} else {
		err = run()
	}
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.PaymentErrors.WithLabelValues(paymentErrorType(err)).Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsRecorded.Inc()
		amount, _ := payment.Amount.Float64()
		uc.metrics.PaymentAmount.Observe(amount)
	}

	// A recorded payment changes the holder's ledger; drop the cached
	// statement so the next read rebuilds it. Best effort.
	if uc.statements != nil {
		uc.statements.Invalidate(ctx, payment.HolderID)
	}

	return payment, nil
}

func paymentErrorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return "invoice_not_found"
	case errors.Is(err, domain.ErrInvoiceCancelled):
		return "invoice_cancelled"
	case errors.Is(err, domain.ErrPaymentExceedsOutstanding):
		return "exceeds_outstanding"
	default:
		return "other"
	}
}

func (uc *PaymentUseCase) recordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	invoice, err := uc.invoiceRepo.GetByIDForUpdate(ctx, tx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoiceStatusCancelled {
		return nil, domain.ErrInvoiceCancelled
	}

	outstanding := invoice.Outstanding()
	if input.Amount.GreaterThan(outstanding) {
		return nil, domain.ErrPaymentExceedsOutstanding
	}

	now := time.Now().UTC()

	paidAt := now
	if input.PaidAt != nil {
		paidAt = input.PaidAt.UTC()
	}

	payment := &domain.Payment{
		ID:        uc.idGen.Generate(),
		InvoiceID: invoice.ID,
		HolderID:  invoice.HolderID,
		Amount:    input.Amount,
		PaidAt:    paidAt,
		Method:    input.Method,
		Reference: input.Reference,
		CreatedAt: now,
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Create(ctx, tx, payment); err != nil {
		return nil, err
	}

	newPaid := invoice.NormalizedPaid().Add(input.Amount)
	status := invoice.Status
	if newPaid.GreaterThanOrEqual(invoice.GrandTotal) {
		status = domain.InvoiceStatusPaid
	}

	if err := uc.invoiceRepo.UpdatePaid(ctx, tx, invoice.ID, newPaid, status, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   invoice.ID,
		AggregateType: domain.AggregateTypeInvoice,
		EventType:     domain.EventTypePaymentRecorded,
		Payload: map[string]any{
			"payment_id": payment.ID,
			"invoice_id": invoice.ID,
			"holder_id":  invoice.HolderID,
			"amount":     payment.Amount.String(),
			"paid_at":    payment.PaidAt.Format(time.RFC3339),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return payment, nil
}

// ListPaymentsByInvoice lists payments recorded against one invoice.
func (uc *PaymentUseCase) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]*domain.Payment, error) {
	return uc.paymentRepo.ListByInvoice(ctx, invoiceID)
}
