package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/usecase"
	"github.com/iho/arledger/internal/usecase/mocks"
)

func TestAgingUseCase_GetAgingReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	holderRepo := mocks.NewMockHolderRepository(ctrl)
	holderRepo.EXPECT().GetByID(gomock.Any(), "h-1").Return(&domain.AccountHolder{ID: "h-1"}, nil)

	noteRepo := mocks.NewMockNoteRepository(ctrl)

	invoiceRepo := mocks.NewMockInvoiceRepository()
	seedInvoice(invoiceRepo, &domain.Invoice{
		ID:         "inv-1",
		HolderID:   "h-1",
		IssueDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		GrandTotal: decimal.NewFromInt(100),
		Status:     domain.InvoiceStatusPending,
	})
	seedInvoice(invoiceRepo, &domain.Invoice{
		ID:         "inv-2",
		HolderID:   "h-1",
		IssueDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		GrandTotal: decimal.NewFromInt(50),
		PaidAmount: decimal.NewFromInt(20),
		Status:     domain.InvoiceStatusOverdue,
	})

	uc := usecase.NewAgingUseCase(invoiceRepo, noteRepo, holderRepo, nil)

	asOf := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	report, err := uc.GetAgingReport(context.Background(), "h-1", &asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.TotalOutstanding.Equal(decimal.NewFromInt(130)) {
		t.Errorf("expected total outstanding 130, got %s", report.TotalOutstanding)
	}

	// inv-1 is 4 days overdue, inv-2 is 24 days overdue; both land in 1-30.
	for _, b := range report.Buckets {
		want := decimal.Zero
		if b.Label == domain.Bucket1To30 {
			want = decimal.NewFromInt(130)
		}
		if !b.Amount.Equal(want) {
			t.Errorf("bucket %s: expected %s, got %s", b.Label, want, b.Amount)
		}
	}
}

func TestAgingUseCase_GetAgingReport_UnknownHolder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	holderRepo := mocks.NewMockHolderRepository(ctrl)
	holderRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, domain.ErrHolderNotFound)

	uc := usecase.NewAgingUseCase(mocks.NewMockInvoiceRepository(), mocks.NewMockNoteRepository(ctrl), holderRepo, nil)

	if _, err := uc.GetAgingReport(context.Background(), "missing", nil); err != domain.ErrHolderNotFound {
		t.Errorf("expected %v, got %v", domain.ErrHolderNotFound, err)
	}
}

func TestAgingUseCase_GetNoteAgingReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	holderRepo := mocks.NewMockHolderRepository(ctrl)
	holderRepo.EXPECT().GetByID(gomock.Any(), "h-1").Return(&domain.AccountHolder{ID: "h-1"}, nil)

	noteRepo := mocks.NewMockNoteRepository(ctrl)
	noteRepo.EXPECT().ListOutstandingByHolder(gomock.Any(), "h-1").Return([]*domain.PromissoryNote{
		{
			ID:       "n-1",
			HolderID: "h-1",
			DueDate:  time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC),
			Amount:   decimal.NewFromInt(500),
			Status:   domain.NoteStatusOutstanding,
		},
	}, nil)

	uc := usecase.NewAgingUseCase(mocks.NewMockInvoiceRepository(), noteRepo, holderRepo, nil)

	asOf := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	report, err := uc.GetNoteAgingReport(context.Background(), "h-1", &asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 121 days overdue lands in the oldest bucket.
	for _, b := range report.Buckets {
		want := decimal.Zero
		if b.Label == domain.BucketOver90 {
			want = decimal.NewFromInt(500)
		}
		if !b.Amount.Equal(want) {
			t.Errorf("bucket %s: expected %s, got %s", b.Label, want, b.Amount)
		}
	}
}
