package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veltri/propledger/internal/domain"
	"github.com/veltri/propledger/internal/usecase"
)

// JournalRepository implements usecase.JournalRepository. A journal and its
// proposed lines are written together; the lines are the draft input, not
// the committed ledger rows.
type JournalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: pool}
}

// Create persists a draft journal with its proposed lines.
func (r *JournalRepository) Create(ctx context.Context, journal *domain.LedgerJournal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO journals (id, status, created_by, flag_notes, posted_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := tx.Exec(ctx, query,
		journal.ID,
		string(journal.Status),
		journal.CreatedBy,
		journal.FlagNotes,
		timePtrToPgTimestamptz(journal.PostedAt),
		timeToPgTimestamptz(journal.CreatedAt),
	); err != nil {
		return err
	}

	lineQuery := `
		INSERT INTO journal_lines (id, journal_id, account_id, direction, amount_minor, currency, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, e := range journal.Entries {
		if _, err := tx.Exec(ctx, lineQuery,
			e.ID,
			journal.ID,
			e.AccountID,
			string(e.Direction),
			e.Amount.Amount(),
			e.Amount.Currency().Code,
			e.Description,
			timeToPgTimestamptz(e.CreatedAt),
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a journal with its lines.
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*domain.LedgerJournal, error) {
	query := `
		SELECT id, status, created_by, flag_notes, posted_at, created_at
		FROM journals
		WHERE id = $1
	`

	journal, err := scanJournal(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJournalNotFound
		}

		return nil, err
	}

	journal.Entries, err = r.loadLines(ctx, r.pool, id)
	if err != nil {
		return nil, err
	}

	return journal, nil
}

// GetByIDForUpdate retrieves a journal with a row lock inside tx. The lock
// serializes concurrent posts of the same journal.
func (r *JournalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LedgerJournal, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT id, status, created_by, flag_notes, posted_at, created_at
		FROM journals
		WHERE id = $1
		FOR UPDATE
	`

	journal, err := scanJournal(pgxTx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJournalNotFound
		}

		return nil, err
	}

	journal.Entries, err = r.loadLines(ctx, pgxTx, id)
	if err != nil {
		return nil, err
	}

	return journal, nil
}

// UpdateStatus records the posting decision inside tx.
func (r *JournalRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.JournalStatus, flagNotes []string, postedAt *time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE journals
		SET status = $2, flag_notes = $3, posted_at = $4
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, string(status), flagNotes, timePtrToPgTimestamptz(postedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrJournalNotFound
	}

	return nil
}

type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *JournalRepository) loadLines(ctx context.Context, q pgxQuerier, journalID string) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, journal_id, account_id, direction, amount_minor, currency, description, created_at
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, journalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanJournal(row pgx.Row) (*domain.LedgerJournal, error) {
	var (
		journal   domain.LedgerJournal
		status    string
		postedAt  pgtype.Timestamptz
		createdAt pgtype.Timestamptz
	)

	if err := row.Scan(&journal.ID, &status, &journal.CreatedBy, &journal.FlagNotes, &postedAt, &createdAt); err != nil {
		return nil, err
	}

	journal.Status = domain.JournalStatus(status)
	journal.CreatedAt = createdAt.Time
	if postedAt.Valid {
		t := postedAt.Time
		journal.PostedAt = &t
	}

	return &journal, nil
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var (
		entry       domain.LedgerEntry
		direction   string
		amountMinor int64
		currency    string
		createdAt   pgtype.Timestamptz
	)

	if err := row.Scan(&entry.ID, &entry.JournalID, &entry.AccountID, &direction, &amountMinor, &currency, &entry.Description, &createdAt); err != nil {
		return nil, err
	}

	entry.Direction = domain.Direction(direction)
	entry.Amount = money.New(amountMinor, currency)
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}

func timePtrToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: *t, Valid: true}
}
