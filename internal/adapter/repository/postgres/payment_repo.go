package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/usecase"
)

const paymentColumns = `id, invoice_id, holder_id, amount, paid_at, method, reference, created_at`

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create creates a new payment within a transaction.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO payments (id, invoice_id, holder_id, amount, paid_at, method, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		payment.ID,
		payment.InvoiceID,
		payment.HolderID,
		decimalToNumeric(payment.Amount),
		timeToPgTimestamptz(payment.PaidAt),
		payment.Method,
		payment.Reference,
		timeToPgTimestamptz(payment.CreatedAt),
	)

	return err
}

// ListByInvoice lists payments recorded against one invoice.
func (r *PaymentRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE invoice_id = $1
		ORDER BY paid_at, id`,
		invoiceID,
	)
	if err != nil {
		return nil, err
	}

	return scanPayments(rows)
}

// ListByHolder lists all payments recorded against one holder's invoices.
func (r *PaymentRepository) ListByHolder(ctx context.Context, holderID string) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE holder_id = $1
		ORDER BY paid_at, id`,
		holderID,
	)
	if err != nil {
		return nil, err
	}

	return scanPayments(rows)
}

func scanPayments(rows pgx.Rows) ([]*domain.Payment, error) {
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		var (
			payment   domain.Payment
			amount    pgtype.Numeric
			paidAt    pgtype.Timestamptz
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&payment.ID,
			&payment.InvoiceID,
			&payment.HolderID,
			&amount,
			&paidAt,
			&payment.Method,
			&payment.Reference,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		payment.Amount = numericToDecimal(amount)
		payment.PaidAt = paidAt.Time
		payment.CreatedAt = createdAt.Time

		payments = append(payments, &payment)
	}

	return payments, rows.Err()
}
