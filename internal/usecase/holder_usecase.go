package usecase

import (
	"context"
	"time"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/infrastructure/metrics"
)

// HolderUseCase handles account holder business logic.
type HolderUseCase struct {
	holderRepo HolderRepository
	idGen      IDGenerator
	metrics    *metrics.Metrics
}

// NewHolderUseCase creates a new HolderUseCase. metrics may be nil.
func NewHolderUseCase(holderRepo HolderRepository, idGen IDGenerator, m *metrics.Metrics) *HolderUseCase {
	return &HolderUseCase{
		holderRepo: holderRepo,
		idGen:      idGen,
		metrics:    m,
	}
}

// CreateHolderInput represents input for creating an account holder.
type CreateHolderInput struct {
	Name      string
	TaxNumber string
	Email     string
	Phone     string
}

// CreateHolder creates a new account holder.
func (uc *HolderUseCase) CreateHolder(ctx context.Context, input CreateHolderInput) (*domain.AccountHolder, error) {
	if err := domain.ValidateHolderName(input.Name); err != nil {
		return nil, err
	}
	if input.Email != "" {
		if err := domain.ValidateEmail(input.Email); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	holder := &domain.AccountHolder{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		TaxNumber: input.TaxNumber,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.holderRepo.Create(ctx, holder); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.HoldersCreated.Inc()
	}

	return holder, nil
}

// GetHolder retrieves an account holder by ID.
func (uc *HolderUseCase) GetHolder(ctx context.Context, id string) (*domain.AccountHolder, error) {
	return uc.holderRepo.GetByID(ctx, id)
}

// ListHoldersInput represents input for listing account holders.
type ListHoldersInput struct {
	Limit  int
	Offset int
}

// ListHolders lists account holders with pagination.
func (uc *HolderUseCase) ListHolders(ctx context.Context, input ListHoldersInput) ([]*domain.AccountHolder, error) {
	return uc.holderRepo.List(ctx, clampPage(input.Limit), input.Offset)
}
