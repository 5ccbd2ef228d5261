package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/infrastructure/metrics"
)

// NoteUseCase handles promissory note business logic.
type NoteUseCase struct {
	txManager  TransactionManager
	noteRepo   NoteRepository
	holderRepo HolderRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
	metrics    *metrics.Metrics
}

// NewNoteUseCase creates a new NoteUseCase. metrics may be nil.
func NewNoteUseCase(
	txManager TransactionManager,
	noteRepo NoteRepository,
	holderRepo HolderRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *NoteUseCase {
	return &NoteUseCase{
		txManager:  txManager,
		noteRepo:   noteRepo,
		holderRepo: holderRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		metrics:    m,
	}
}

// CreateNoteInput represents input for creating a promissory note.
type CreateNoteInput struct {
	HolderID   string
	NoteNumber string
	IssueDate  time.Time
	DueDate    time.Time
	Amount     decimal.Decimal
}

// CreateNote creates a new promissory note and records an outbox event in
// the same transaction.
func (uc *NoteUseCase) CreateNote(ctx context.Context, input CreateNoteInput) (*domain.PromissoryNote, error) {
	if _, err := uc.holderRepo.GetByID(ctx, input.HolderID); err != nil {
		return nil, err
	}
	if err := domain.ValidateDocumentAmount(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	note := &domain.PromissoryNote{
		ID:            uc.idGen.Generate(),
		HolderID:      input.HolderID,
		NoteNumber:    input.NoteNumber,
		IssueDate:     input.IssueDate,
		DueDate:       input.DueDate,
		Amount:        input.Amount,
		SettledAmount: decimal.Zero,
		Status:        domain.NoteStatusOutstanding,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.noteRepo.Create(ctx, tx, note); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   note.ID,
		AggregateType: domain.AggregateTypeNote,
		EventType:     domain.EventTypeNoteCreated,
		Payload: map[string]any{
			"note_id":     note.ID,
			"holder_id":   note.HolderID,
			"note_number": note.NoteNumber,
			"amount":      note.Amount.String(),
			"due_date":    note.DueDate.Format(domain.DateLayout),
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
		uc.metrics.NotesCreated.Inc()
	}

	return note, nil
}

// GetNote retrieves a promissory note by ID.
func (uc *NoteUseCase) GetNote(ctx context.Context, id string) (*domain.PromissoryNote, error) {
	return uc.noteRepo.GetByID(ctx, id)
}

// ListNotesByHolderInput represents input for listing a holder's notes.
type ListNotesByHolderInput struct {
	HolderID string
	Limit    int
	Offset   int
}

// ListNotesByHolder lists promissory notes of one account holder.
func (uc *NoteUseCase) ListNotesByHolder(ctx context.Context, input ListNotesByHolderInput) ([]*domain.PromissoryNote, error) {
	return uc.noteRepo.ListByHolder(ctx, input.HolderID, clampPage(input.Limit), input.Offset)
}

// SettleNoteInput represents input for settling a promissory note.
type SettleNoteInput struct {
	NoteID string
	Amount decimal.Decimal
}

// SettleNote applies a settlement against a promissory note. The note flips
// to settled once the full face amount is covered.
func (uc *NoteUseCase) SettleNote(ctx context.Context, input SettleNoteInput) (*domain.PromissoryNote, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrPaymentNotPositive
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	note, err := uc.noteRepo.GetByIDForUpdate(ctx, tx, input.NoteID)
	if err != nil {
		return nil, err
	}
	if note.Status == domain.NoteStatusSettled {
		return nil, domain.ErrNoteAlreadySettled
	}
	if input.Amount.GreaterThan(note.Outstanding()) {
		return nil, domain.ErrPaymentExceedsOutstanding
	}

	now := time.Now().UTC()

	newSettled := note.SettledAmount.Add(input.Amount)
	status := note.Status
	if newSettled.GreaterThanOrEqual(note.Amount) {
		status = domain.NoteStatusSettled
	}

	if err := uc.noteRepo.UpdateSettlement(ctx, tx, note.ID, newSettled, status, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   note.ID,
		AggregateType: domain.AggregateTypeNote,
		EventType:     domain.EventTypeNoteSettled,
		Payload: map[string]any{
			"note_id":        note.ID,
			"holder_id":      note.HolderID,
			"settled_amount": newSettled.String(),
			"status":         string(status),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil && status == domain.NoteStatusSettled {
		uc.metrics.NotesSettled.Inc()
	}

	note.SettledAmount = newSettled
	note.Status = status
	note.UpdatedAt = now

	return note, nil
}
