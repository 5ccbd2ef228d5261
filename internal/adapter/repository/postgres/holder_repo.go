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
)

// HolderRepository implements usecase.HolderRepository.
type HolderRepository struct {
	pool *pgxpool.Pool
}

// NewHolderRepository creates a new HolderRepository.
func NewHolderRepository(pool *pgxpool.Pool) *HolderRepository {
	return &HolderRepository{pool: pool}
}

// Create creates a new account holder.
func (r *HolderRepository) Create(ctx context.Context, holder *domain.AccountHolder) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO holders (id, name, tax_number, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		holder.ID,
		holder.Name,
		holder.TaxNumber,
		holder.Email,
		holder.Phone,
		timeToPgTimestamptz(holder.CreatedAt),
		timeToPgTimestamptz(holder.UpdatedAt),
	)

	return err
}

// GetByID retrieves an account holder by ID.
func (r *HolderRepository) GetByID(ctx context.Context, id string) (*domain.AccountHolder, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, tax_number, email, phone, created_at, updated_at
		FROM holders
		WHERE id = $1`,
		id,
	)

	holder, err := scanHolder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHolderNotFound
		}

		return nil, err
	}

	return holder, nil
}

// List lists account holders with pagination.
func (r *HolderRepository) List(ctx context.Context, limit, offset int) ([]*domain.AccountHolder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, tax_number, email, phone, created_at, updated_at
		FROM holders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		int32(limit),
		int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holders []*domain.AccountHolder
	for rows.Next() {
		holder, err := scanHolder(rows)
		if err != nil {
			return nil, err
		}
		holders = append(holders, holder)
	}

	return holders, rows.Err()
}

func scanHolder(row pgx.Row) (*domain.AccountHolder, error) {
	var (
		holder    domain.AccountHolder
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&holder.ID,
		&holder.Name,
		&holder.TaxNumber,
		&holder.Email,
		&holder.Phone,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	holder.CreatedAt = createdAt.Time
	holder.UpdatedAt = updatedAt.Time

	return &holder, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timeToPgDate(t time.Time) pgtype.Date {
	if t.IsZero() {
		return pgtype.Date{}
	}

	return pgtype.Date{Time: t, Valid: true}
}

func pgDateToTime(d pgtype.Date) time.Time {
	if !d.Valid {
		return time.Time{}
	}

	return d.Time.UTC()
}
