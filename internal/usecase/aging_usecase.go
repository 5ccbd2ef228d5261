package usecase

import (
	"context"
	"time"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/infrastructure/metrics"
)

// AgingUseCase produces overdue-age reports for account holders. The
// reference date is explicit so reports stay reproducible; callers omitting
// it get the current UTC date.
type AgingUseCase struct {
	invoiceRepo InvoiceRepository
	noteRepo    NoteRepository
	holderRepo  HolderRepository
	metrics     *metrics.Metrics
}

// NewAgingUseCase creates a new AgingUseCase. metrics may be nil.
func NewAgingUseCase(invoiceRepo InvoiceRepository, noteRepo NoteRepository, holderRepo HolderRepository, m *metrics.Metrics) *AgingUseCase {
	return &AgingUseCase{
		invoiceRepo: invoiceRepo,
		noteRepo:    noteRepo,
		holderRepo:  holderRepo,
		metrics:     m,
	}
}

// GetAgingReport buckets the holder's outstanding invoices by overdue age.
func (uc *AgingUseCase) GetAgingReport(ctx context.Context, holderID string, asOf *time.Time) (domain.AgingReport, error) {
	if _, err := uc.holderRepo.GetByID(ctx, holderID); err != nil {
		return domain.AgingReport{}, err
	}

	invoices, err := uc.invoiceRepo.ListUnpaidByHolder(ctx, holderID)
	if err != nil {
		return domain.AgingReport{}, err
	}

	if uc.metrics != nil {
		uc.metrics.AgingReportsBuilt.Inc()
	}

	return domain.BuildAgingReport(invoices, uc.referenceDate(asOf)), nil
}

// GetNoteAgingReport buckets the holder's outstanding promissory notes by
// overdue age with the same bucket boundaries.
func (uc *AgingUseCase) GetNoteAgingReport(ctx context.Context, holderID string, asOf *time.Time) (domain.AgingReport, error) {
	if _, err := uc.holderRepo.GetByID(ctx, holderID); err != nil {
		return domain.AgingReport{}, err
	}

	notes, err := uc.noteRepo.ListOutstandingByHolder(ctx, holderID)
	if err != nil {
		return domain.AgingReport{}, err
	}

	if uc.metrics != nil {
		uc.metrics.AgingReportsBuilt.Inc()
	}

	return domain.BuildNoteAgingReport(notes, uc.referenceDate(asOf)), nil
}

func (uc *AgingUseCase) referenceDate(asOf *time.Time) time.Time {
	if asOf != nil {
		return asOf.UTC()
	}
	return time.Now().UTC()
}
