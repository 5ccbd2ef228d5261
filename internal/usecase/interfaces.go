package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/arledger/internal/domain"
)

// HolderRepository defines data access for account holders.
type HolderRepository interface {
	Create(ctx context.Context, holder *domain.AccountHolder) error
	GetByID(ctx context.Context, id string) (*domain.AccountHolder, error)
	List(ctx context.Context, limit, offset int) ([]*domain.AccountHolder, error)
}

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, tx Transaction, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Invoice, error)
	ListByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.Invoice, error)
	ListAllByHolder(ctx context.Context, holderID string) ([]*domain.Invoice, error)
	ListUnpaidByHolder(ctx context.Context, holderID string) ([]*domain.Invoice, error)
	UpdatePaid(ctx context.Context, tx Transaction, id string, paidAmount decimal.Decimal, status domain.InvoiceStatus, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.InvoiceStatus, updatedAt time.Time) error
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	ListByInvoice(ctx context.Context, invoiceID string) ([]*domain.Payment, error)
	ListByHolder(ctx context.Context, holderID string) ([]*domain.Payment, error)
}

// NoteRepository defines data access for promissory notes.
type NoteRepository interface {
	Create(ctx context.Context, tx Transaction, note *domain.PromissoryNote) error
	GetByID(ctx context.Context, id string) (*domain.PromissoryNote, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.PromissoryNote, error)
	ListByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.PromissoryNote, error)
	ListOutstandingByHolder(ctx context.Context, holderID string) ([]*domain.PromissoryNote, error)
	UpdateSettlement(ctx context.Context, tx Transaction, id string, settledAmount decimal.Decimal, status domain.NoteStatus, updatedAt time.Time) error
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
