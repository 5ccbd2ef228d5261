package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/usecase"
)

const invoiceColumns = `id, holder_id, invoice_number, issue_date, due_date,
	grand_total, paid_amount, status, created_at, updated_at`

// InvoiceRepository implements usecase.InvoiceRepository.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

// Create creates a new invoice within a transaction.
func (r *InvoiceRepository) Create(ctx context.Context, tx usecase.Transaction, invoice *domain.Invoice) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO invoices (id, holder_id, invoice_number, issue_date, due_date,
			grand_total, paid_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		invoice.ID,
		invoice.HolderID,
		invoice.InvoiceNumber,
		timeToPgDate(invoice.IssueDate),
		timeToPgDate(invoice.DueDate),
		decimalToNumeric(invoice.GrandTotal),
		decimalToNumeric(invoice.PaidAmount),
		string(invoice.Status),
		timeToPgTimestamptz(invoice.CreatedAt),
		timeToPgTimestamptz(invoice.UpdatedAt),
	)

	return err
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE id = $1`,
		id,
	)

	return scanInvoiceRow(row)
}

// GetByIDForUpdate retrieves an invoice by ID with a FOR UPDATE lock.
func (r *InvoiceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE id = $1
		FOR UPDATE`,
		id,
	)

	return scanInvoiceRow(row)
}

// ListByHolder lists a holder's invoices with pagination.
func (r *InvoiceRepository) ListByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE holder_id = $1
		ORDER BY issue_date, id
		LIMIT $2 OFFSET $3`,
		holderID,
		int32(limit),
		int32(offset),
	)
	if err != nil {
		return nil, err
	}

	return scanInvoices(rows)
}

// ListAllByHolder lists all of a holder's invoices, for statement builds.
func (r *InvoiceRepository) ListAllByHolder(ctx context.Context, holderID string) ([]*domain.Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE holder_id = $1
		ORDER BY issue_date, id`,
		holderID,
	)
	if err != nil {
		return nil, err
	}

	return scanInvoices(rows)
}

// ListUnpaidByHolder lists a holder's invoices that are not marked paid.
func (r *InvoiceRepository) ListUnpaidByHolder(ctx context.Context, holderID string) ([]*domain.Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE holder_id = $1 AND status != $2
		ORDER BY issue_date, id`,
		holderID,
		string(domain.InvoiceStatusPaid),
	)
	if err != nil {
		return nil, err
	}

	return scanInvoices(rows)
}

// UpdatePaid updates the paid amount and status of an invoice.
func (r *InvoiceRepository) UpdatePaid(ctx context.Context, tx usecase.Transaction, id string, paidAmount decimal.Decimal, status domain.InvoiceStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE invoices
		SET paid_amount = $2, status = $3, updated_at = $4
		WHERE id = $1`,
		id,
		decimalToNumeric(paidAmount),
		string(status),
		timeToPgTimestamptz(updatedAt),
	)

	return err
}

// UpdateStatus updates the status of an invoice.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.InvoiceStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE invoices
		SET status = $2, updated_at = $3
		WHERE id = $1`,
		id,
		string(status),
		timeToPgTimestamptz(updatedAt),
	)

	return err
}

func scanInvoiceRow(row pgx.Row) (*domain.Invoice, error) {
	invoice, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}

		return nil, err
	}

	return invoice, nil
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var (
		invoice    domain.Invoice
		issueDate  pgtype.Date
		dueDate    pgtype.Date
		grandTotal pgtype.Numeric
		paidAmount pgtype.Numeric
		status     string
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&invoice.ID,
		&invoice.HolderID,
		&invoice.InvoiceNumber,
		&issueDate,
		&dueDate,
		&grandTotal,
		&paidAmount,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	invoice.IssueDate = pgDateToTime(issueDate)
	invoice.DueDate = pgDateToTime(dueDate)
	invoice.GrandTotal = numericToDecimal(grandTotal)
	invoice.PaidAmount = numericToDecimal(paidAmount)
	invoice.Status = domain.InvoiceStatus(status)
	invoice.CreatedAt = createdAt.Time
	invoice.UpdatedAt = updatedAt.Time

	return &invoice, nil
}

func scanInvoices(rows pgx.Rows) ([]*domain.Invoice, error) {
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}

	return invoices, rows.Err()
}
