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

const noteColumns = `id, holder_id, note_number, issue_date, due_date,
	amount, settled_amount, status, created_at, updated_at`

// NoteRepository implements usecase.NoteRepository.
type NoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create creates a new promissory note within a transaction.
func (r *NoteRepository) Create(ctx context.Context, tx usecase.Transaction, note *domain.PromissoryNote) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO promissory_notes (id, holder_id, note_number, issue_date, due_date,
			amount, settled_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		note.ID,
		note.HolderID,
		note.NoteNumber,
		timeToPgDate(note.IssueDate),
		timeToPgDate(note.DueDate),
		decimalToNumeric(note.Amount),
		decimalToNumeric(note.SettledAmount),
		string(note.Status),
		timeToPgTimestamptz(note.CreatedAt),
		timeToPgTimestamptz(note.UpdatedAt),
	)

	return err
}

// GetByID retrieves a promissory note by ID.
func (r *NoteRepository) GetByID(ctx context.Context, id string) (*domain.PromissoryNote, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+noteColumns+`
		FROM promissory_notes
		WHERE id = $1`,
		id,
	)

	return scanNoteRow(row)
}

// GetByIDForUpdate retrieves a promissory note by ID with a FOR UPDATE lock.
func (r *NoteRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PromissoryNote, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+noteColumns+`
		FROM promissory_notes
		WHERE id = $1
		FOR UPDATE`,
		id,
	)

	return scanNoteRow(row)
}

// ListByHolder lists a holder's promissory notes with pagination.
func (r *NoteRepository) ListByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.PromissoryNote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+noteColumns+`
		FROM promissory_notes
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

	return scanNotes(rows)
}

// ListOutstandingByHolder lists a holder's notes that are not settled.
func (r *NoteRepository) ListOutstandingByHolder(ctx context.Context, holderID string) ([]*domain.PromissoryNote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+noteColumns+`
		FROM promissory_notes
		WHERE holder_id = $1 AND status != $2
		ORDER BY issue_date, id`,
		holderID,
		string(domain.NoteStatusSettled),
	)
	if err != nil {
		return nil, err
	}

	return scanNotes(rows)
}

// UpdateSettlement updates the settled amount and status of a note.
func (r *NoteRepository) UpdateSettlement(ctx context.Context, tx usecase.Transaction, id string, settledAmount decimal.Decimal, status domain.NoteStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE promissory_notes
		SET settled_amount = $2, status = $3, updated_at = $4
		WHERE id = $1`,
		id,
		decimalToNumeric(settledAmount),
		string(status),
		timeToPgTimestamptz(updatedAt),
	)

	return err
}

func scanNoteRow(row pgx.Row) (*domain.PromissoryNote, error) {
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}

		return nil, err
	}

	return note, nil
}

func scanNote(row pgx.Row) (*domain.PromissoryNote, error) {
	var (
		note          domain.PromissoryNote
		issueDate     pgtype.Date
		dueDate       pgtype.Date
		amount        pgtype.Numeric
		settledAmount pgtype.Numeric
		status        string
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&note.ID,
		&note.HolderID,
		&note.NoteNumber,
		&issueDate,
		&dueDate,
		&amount,
		&settledAmount,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	note.IssueDate = pgDateToTime(issueDate)
	note.DueDate = pgDateToTime(dueDate)
	note.Amount = numericToDecimal(amount)
	note.SettledAmount = numericToDecimal(settledAmount)
	note.Status = domain.NoteStatus(status)
	note.CreatedAt = createdAt.Time
	note.UpdatedAt = updatedAt.Time

	return &note, nil
}

func scanNotes(rows pgx.Rows) ([]*domain.PromissoryNote, error) {
	defer rows.Close()

	var notes []*domain.PromissoryNote
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}
