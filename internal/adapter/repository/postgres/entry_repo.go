package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veltri/propledger/internal/domain"
	"github.com/veltri/propledger/internal/usecase"
)

// LedgerEntryRepository implements usecase.LedgerEntryRepository. Rows in
// ledger_entries are append-only; they exist only for journals that reached
// Posted.
type LedgerEntryRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerEntryRepository creates a new LedgerEntryRepository.
func NewLedgerEntryRepository(pool *pgxpool.Pool) *LedgerEntryRepository {
	return &LedgerEntryRepository{pool: pool}
}

// Create writes one committed ledger row inside the posting transaction.
func (r *LedgerEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO ledger_entries (id, journal_id, account_id, direction, amount_minor, currency, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pgxTx.Exec(ctx, query,
		entry.ID,
		entry.JournalID,
		entry.AccountID,
		string(entry.Direction),
		entry.Amount.Amount(),
		entry.Amount.Currency().Code,
		entry.Description,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// GetByJournal lists the committed rows of a posted journal.
func (r *LedgerEntryRepository) GetByJournal(ctx context.Context, journalID string) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, journal_id, account_id, direction, amount_minor, currency, description, created_at
		FROM ledger_entries
		WHERE journal_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, journalID)
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

// GetByAccount lists committed rows against an account, newest first.
func (r *LedgerEntryRepository) GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, journal_id, account_id, direction, amount_minor, currency, description, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
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
