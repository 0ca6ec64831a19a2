package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veltri/propledger/internal/domain"
)

// AccountDirectory resolves account identifiers for the posting engine. The
// engine only asks whether an account exists and accepts postings.
type AccountDirectory interface {
	Exists(ctx context.Context, accountID string) (bool, error)
}

// AccountRepository defines data access for chart-of-accounts entries.
type AccountRepository interface {
	AccountDirectory
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// JournalRepository defines data access for ledger journals and their
// proposed lines.
type JournalRepository interface {
	Create(ctx context.Context, journal *domain.LedgerJournal) error
	GetByID(ctx context.Context, id string) (*domain.LedgerJournal, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.LedgerJournal, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.JournalStatus, flagNotes []string, postedAt *time.Time) error
}

// LedgerEntryRepository defines data access for committed ledger rows.
// Rows are written only inside a successful posting transaction.
type LedgerEntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByJournal(ctx context.Context, journalID string) ([]*domain.LedgerEntry, error)
	GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
}

// ScheduleStore supplies the ordered apportionment schedules of an
// allocation context. Schedules are read-only to the engines.
type ScheduleStore interface {
	Create(ctx context.Context, contextID string, position int, schedule domain.ApportionmentSchedule) error
	ListByContext(ctx context.Context, contextID string) ([]domain.ApportionmentSchedule, error)
}

// UnitDirectory resolves unit sizes for unit-size-weighted allocations.
// The bool result reports whether a size is known for the unit.
type UnitDirectory interface {
	Size(ctx context.Context, unitID string) (decimal.Decimal, bool, error)
}

// UnitRepository defines data access for property units.
type UnitRepository interface {
	UnitDirectory
	Create(ctx context.Context, unit *domain.Unit) error
	GetByID(ctx context.Context, id string) (*domain.Unit, error)
}

// ImbalanceHistory records flagged journals per submitter and answers the
// recurrence query behind the governance advisory. It is a signal store,
// not a source of truth; callers tolerate its unavailability.
type ImbalanceHistory interface {
	RecordFlag(ctx context.Context, submitterID string, at time.Time) error
	RecentFlagCount(ctx context.Context, submitterID string, window time.Duration) (int, error)
}

// AuditRepository defines data access for audit records.
type AuditRepository interface {
	Create(ctx context.Context, record *domain.AuditRecord) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error)
	GetByResourceID(ctx context.Context, resourceID string) ([]*domain.AuditRecord, error)
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

// Retrier retries an operation on transient storage conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
