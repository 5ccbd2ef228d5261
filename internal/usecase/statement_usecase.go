package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/infrastructure/metrics"
)

// StatementUseCase builds receivables statements for account holders.
// Statements are derived in full from the current invoice and payment
// records; Redis only shortcuts the rebuild for a few minutes.
type StatementUseCase struct {
	invoiceRepo InvoiceRepository
	paymentRepo PaymentRepository
	holderRepo  HolderRepository
	cache       Cache
	cacheTTL    time.Duration
	metrics     *metrics.Metrics
}

// NewStatementUseCase creates a new StatementUseCase. cache may be nil, in
// which case every call rebuilds the statement. metrics may be nil.
func NewStatementUseCase(
	invoiceRepo InvoiceRepository,
	paymentRepo PaymentRepository,
	holderRepo HolderRepository,
	cache Cache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
) *StatementUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultStatementCacheTTL
	}
	return &StatementUseCase{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		holderRepo:  holderRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     m,
	}
}

// GetStatement returns the holder's full transaction ledger with running
// balance, payments dated by their real payment dates where recorded.
func (uc *StatementUseCase) GetStatement(ctx context.Context, holderID string) (*domain.Statement, error) {
	if _, err := uc.holderRepo.GetByID(ctx, holderID); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, statementCacheKey(holderID)); err == nil && raw != "" {
			var cached domain.Statement
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	start := time.Now()

	invoices, err := uc.invoiceRepo.ListAllByHolder(ctx, holderID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.ListByHolder(ctx, holderID)
	if err != nil {
		return nil, err
	}

	txns := domain.BuildLedgerWithPayments(invoices, payments)
	statement := domain.NewStatement(holderID, time.Now().UTC(), txns)

	if uc.metrics != nil {
		uc.metrics.StatementsBuilt.Inc()
		uc.metrics.StatementDuration.Observe(time.Since(start).Seconds())
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(statement); err == nil {
			_ = uc.cache.Set(ctx, statementCacheKey(holderID), string(raw), uc.cacheTTL)
		}
	}

	return statement, nil
}

// Invalidate drops the cached statement of one holder.
func (uc *StatementUseCase) Invalidate(ctx context.Context, holderID string) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, statementCacheKey(holderID))
}

func statementCacheKey(holderID string) string {
	return "statement:" + holderID
}
