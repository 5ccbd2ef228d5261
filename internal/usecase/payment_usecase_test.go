package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/usecase"
	"github.com/iho/arledger/internal/usecase/mocks"
)

func seedInvoice(repo *mocks.MockInvoiceRepository, inv *domain.Invoice) {
	_ = repo.Create(context.Background(), nil, inv)
}

func TestPaymentUseCase_RecordPayment(t *testing.T) {
	issue := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		invoice     *domain.Invoice
		input       usecase.RecordPaymentInput
		expectError bool
		errorType   error
		wantStatus  domain.InvoiceStatus
	}{
		{
			name: "partial payment keeps invoice pending",
			invoice: &domain.Invoice{
				ID:         "inv-1",
				HolderID:   "h-1",
				IssueDate:  issue,
				GrandTotal: decimal.NewFromInt(100),
				PaidAmount: decimal.Zero,
				Status:     domain.InvoiceStatusPending,
			},
			input: usecase.RecordPaymentInput{
				InvoiceID: "inv-1",
				Amount:    decimal.NewFromInt(40),
			},
			wantStatus: domain.InvoiceStatusPending,
		},
		{
			name: "final payment flips invoice to paid",
			invoice: &domain.Invoice{
				ID:         "inv-1",
				HolderID:   "h-1",
				IssueDate:  issue,
				GrandTotal: decimal.NewFromInt(100),
				PaidAmount: decimal.NewFromInt(60),
				Status:     domain.InvoiceStatusPending,
			},
			input: usecase.RecordPaymentInput{
				InvoiceID: "inv-1",
				Amount:    decimal.NewFromInt(40),
			},
			wantStatus: domain.InvoiceStatusPaid,
		},
		{
			name: "reject non-positive amount",
			invoice: &domain.Invoice{
				ID:         "inv-1",
				HolderID:   "h-1",
				IssueDate:  issue,
				GrandTotal: decimal.NewFromInt(100),
				Status:     domain.InvoiceStatusPending,
			},
			input: usecase.RecordPaymentInput{
				InvoiceID: "inv-1",
				Amount:    decimal.Zero,
			},
			expectError: true,
			errorType:   domain.ErrPaymentNotPositive,
		},
		{
			name: "reject payment over outstanding",
			invoice: &domain.Invoice{
				ID:         "inv-1",
				HolderID:   "h-1",
				IssueDate:  issue,
				GrandTotal: decimal.NewFromInt(100),
				PaidAmount: decimal.NewFromInt(80),
				Status:     domain.InvoiceStatusPending,
			},
			input: usecase.RecordPaymentInput{
				InvoiceID: "inv-1",
				Amount:    decimal.NewFromInt(30),
			},
			expectError: true,
			errorType:   domain.ErrPaymentExceedsOutstanding,
		},
		{
			name: "reject payment against cancelled invoice",
			invoice: &domain.Invoice{
				ID:         "inv-1",
				HolderID:   "h-1",
				IssueDate:  issue,
				GrandTotal: decimal.NewFromInt(100),
				Status:     domain.InvoiceStatusCancelled,
			},
			input: usecase.RecordPaymentInput{
				InvoiceID: "inv-1",
				Amount:    decimal.NewFromInt(10),
			},
			expectError: true,
			errorType:   domain.ErrInvoiceCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoiceRepo := mocks.NewMockInvoiceRepository()
			paymentRepo := mocks.NewMockPaymentRepository()
			outboxRepo := mocks.NewMockOutboxRepository()
			txMgr := mocks.NewMockTransactionManager()
			idGen := mocks.NewMockIDGenerator()
			seedInvoice(invoiceRepo, tt.invoice)

			uc := usecase.NewPaymentUseCase(txMgr, invoiceRepo, paymentRepo, outboxRepo, idGen, nil, nil, nil)

			payment, err := uc.RecordPayment(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if payment.InvoiceID != tt.invoice.ID {
				t.Errorf("expected invoice ID %s, got %s", tt.invoice.ID, payment.InvoiceID)
			}
			if payment.HolderID != tt.invoice.HolderID {
				t.Errorf("expected holder ID %s, got %s", tt.invoice.HolderID, payment.HolderID)
			}

			stored, err := invoiceRepo.GetByID(context.Background(), tt.invoice.ID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if stored.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, stored.Status)
			}

			events := outboxRepo.Events()
			if len(events) != 1 {
				t.Fatalf("expected 1 outbox event, got %d", len(events))
			}
			if events[0].EventType != domain.EventTypePaymentRecorded {
				t.Errorf("expected event type %s, got %s", domain.EventTypePaymentRecorded, events[0].EventType)
			}
		})
	}
}

func TestPaymentUseCase_RecordPayment_UsesProvidedPaidAt(t *testing.T) {
	invoiceRepo := mocks.NewMockInvoiceRepository()
	paymentRepo := mocks.NewMockPaymentRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	seedInvoice(invoiceRepo, &domain.Invoice{
		ID:         "inv-1",
		HolderID:   "h-1",
		IssueDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		GrandTotal: decimal.NewFromInt(100),
		Status:     domain.InvoiceStatusPending,
	})

	uc := usecase.NewPaymentUseCase(txMgr, invoiceRepo, paymentRepo, outboxRepo, idGen, nil, nil, nil)

	paidAt := time.Date(2024, 2, 15, 9, 30, 0, 0, time.UTC)
	payment, err := uc.RecordPayment(context.Background(), usecase.RecordPaymentInput{
		InvoiceID: "inv-1",
		Amount:    decimal.NewFromInt(25),
		PaidAt:    &paidAt,
		Method:    "wire",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !payment.PaidAt.Equal(paidAt) {
		t.Errorf("expected paid at %v, got %v", paidAt, payment.PaidAt)
	}
}

func TestPaymentUseCase_RecordPayment_RetriesThroughRetrier(t *testing.T) {
	invoiceRepo := mocks.NewMockInvoiceRepository()
	paymentRepo := mocks.NewMockPaymentRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	seedInvoice(invoiceRepo, &domain.Invoice{
		ID:         "inv-1",
		HolderID:   "h-1",
		IssueDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		GrandTotal: decimal.NewFromInt(100),
		Status:     domain.InvoiceStatusPending,
	})

	retrier := &retryTwice{}

	uc := usecase.NewPaymentUseCase(txMgr, invoiceRepo, paymentRepo, outboxRepo, idGen, retrier, nil, nil)

	_, err := uc.RecordPayment(context.Background(), usecase.RecordPaymentInput{
		InvoiceID: "inv-1",
		Amount:    decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if retrier.calls != 1 {
		t.Errorf("expected retrier to be invoked once, got %d", retrier.calls)
	}
}

// retryTwice runs the operation and retries once on failure.
type retryTwice struct {
	calls int
}

func (r *retryTwice) Retry(ctx context.Context, operation func() error) error {
	r.calls++
	if err := operation(); err != nil {
		return operation()
	}
	return nil
}
