package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/usecase"
	"github.com/iho/arledger/internal/usecase/mocks"
)

func TestStatementUseCase_GetStatement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	holderRepo := mocks.NewMockHolderRepository(ctrl)
	holderRepo.EXPECT().GetByID(gomock.Any(), "h-1").Return(&domain.AccountHolder{ID: "h-1"}, nil)

	invoiceRepo := mocks.NewMockInvoiceRepository()
	paymentRepo := mocks.NewMockPaymentRepository()

	seedInvoice(invoiceRepo, &domain.Invoice{
		ID:         "inv-1",
		HolderID:   "h-1",
		IssueDate:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		GrandTotal: decimal.NewFromInt(100),
		PaidAmount: decimal.NewFromInt(40),
		Status:     domain.InvoiceStatusPending,
	})
	_ = paymentRepo.Create(context.Background(), nil, &domain.Payment{
		ID:        "pay-1",
		InvoiceID: "inv-1",
		HolderID:  "h-1",
		Amount:    decimal.NewFromInt(40),
		PaidAt:    time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
	})

	uc := usecase.NewStatementUseCase(invoiceRepo, paymentRepo, holderRepo, nil, 0, nil)

	statement, err := uc.GetStatement(context.Background(), "h-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(statement.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(statement.Transactions))
	}
	if !statement.ClosingBalance.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected closing balance 60, got %s", statement.ClosingBalance)
	}
	if !statement.TotalDebit.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected total debit 100, got %s", statement.TotalDebit)
	}
	if !statement.TotalCredit.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected total credit 40, got %s", statement.TotalCredit)
	}

	// The payment carries its real date, not the invoice issue date.
	credit := statement.Transactions[1]
	if credit.Kind != domain.TransactionPayment {
		t.Fatalf("expected payment transaction, got %s", credit.Kind)
	}
	if got := credit.Date.Format(domain.DateLayout); got != "2024-02-05" {
		t.Errorf("expected payment date 2024-02-05, got %s", got)
	}
}

func TestStatementUseCase_GetStatement_UnknownHolder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	holderRepo := mocks.NewMockHolderRepository(ctrl)
	holderRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, domain.ErrHolderNotFound)

	uc := usecase.NewStatementUseCase(mocks.NewMockInvoiceRepository(), mocks.NewMockPaymentRepository(), holderRepo, nil, 0, nil)

	if _, err := uc.GetStatement(context.Background(), "missing"); err != domain.ErrHolderNotFound {
		t.Errorf("expected %v, got %v", domain.ErrHolderNotFound, err)
	}
}

func TestStatementUseCase_GetStatement_ServesFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	holderRepo := mocks.NewMockHolderRepository(ctrl)
	holderRepo.EXPECT().GetByID(gomock.Any(), "h-1").Return(&domain.AccountHolder{ID: "h-1"}, nil)

	cached := domain.Statement{
		HolderID:       "h-1",
		ClosingBalance: decimal.NewFromInt(42),
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "statement:h-1").Return(string(raw), nil)

	// Repos must not be consulted on a cache hit.
	invoiceRepo := mocks.NewMockInvoiceRepository()
	invoiceRepo.ListAllByHolderFunc = func(ctx context.Context, holderID string) ([]*domain.Invoice, error) {
		t.Fatal("invoice repository should not be called on cache hit")
		return nil, nil
	}

	uc := usecase.NewStatementUseCase(invoiceRepo, mocks.NewMockPaymentRepository(), holderRepo, cache, time.Minute, nil)

	statement, err := uc.GetStatement(context.Background(), "h-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !statement.ClosingBalance.Equal(decimal.NewFromInt(42)) {
		t.Errorf("expected cached closing balance 42, got %s", statement.ClosingBalance)
	}
}

func TestStatementUseCase_Invalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Delete(gomock.Any(), "statement:h-1").Return(nil)

	holderRepo := mocks.NewMockHolderRepository(ctrl)

	uc := usecase.NewStatementUseCase(mocks.NewMockInvoiceRepository(), mocks.NewMockPaymentRepository(), holderRepo, cache, time.Minute, nil)

	uc.Invalidate(context.Background(), "h-1")
}
