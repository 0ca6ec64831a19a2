package domain

import (
	"time"

	"github.com/Rhymond/go-money"
)

// JournalStatus represents the lifecycle state of a ledger journal.
type JournalStatus string

const (
	JournalStatusDraft   JournalStatus = "draft"
	JournalStatusPosted  JournalStatus = "posted"
	JournalStatusFlagged JournalStatus = "flagged"
)

// LedgerEntry is a single proposed debit or credit. Entries are created by
// the caller and never mutated after creation.
type LedgerEntry struct {
	CreatedAt   time.Time
	ID          string
	JournalID   string
	AccountID   string
	Description string
	Direction   Direction
	Amount      *money.Money
}

// Validate validates a single entry.
func (e *LedgerEntry) Validate() error {
	if !e.Direction.Valid() {
		return ErrInvalidDirection
	}

	if e.Amount == nil || !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	return nil
}

// LedgerJournal is an aggregate of proposed entries awaiting a posting
// decision. Status transitions only Draft->Posted or Draft->Flagged; both
// are terminal, a corrected journal must be created to retry.
type LedgerJournal struct {
	CreatedAt time.Time
	PostedAt  *time.Time
	ID        string
	CreatedBy string
	Status    JournalStatus
	FlagNotes []string
	Entries   []*LedgerEntry
}

// Validate checks the journal is structurally postable: it has entries,
// every entry is valid, and all entries share one currency.
func (j *LedgerJournal) Validate() error {
	if len(j.Entries) == 0 {
		return ErrEmptyJournal
	}

	if len(j.Entries) > MaxJournalEntries {
		return ErrTooManyEntries
	}

	currency := j.Entries[0].Amount.Currency().Code
	for _, e := range j.Entries {
		if err := e.Validate(); err != nil {
			return err
		}

		if e.Amount.Currency().Code != currency {
			return ErrCurrencyMismatch
		}
	}

	return nil
}

// Currency returns the journal's currency. Only meaningful after Validate.
func (j *LedgerJournal) Currency() string {
	if len(j.Entries) == 0 {
		return ""
	}

	return j.Entries[0].Amount.Currency().Code
}

// Totals sums entry amounts grouped by direction, in exact minor units.
func (j *LedgerJournal) Totals() (debits, credits *money.Money, err error) {
	currency := j.Currency()
	debitTotal := int64(0)
	creditTotal := int64(0)

	for _, e := range j.Entries {
		if e.Amount.Currency().Code != currency {
			return nil, nil, ErrCurrencyMismatch
		}

		switch e.Direction {
		case DirectionDebit:
			debitTotal += e.Amount.Amount()
		case DirectionCredit:
			creditTotal += e.Amount.Amount()
		default:
			return nil, nil, ErrInvalidDirection
		}
	}

	return money.New(debitTotal, currency), money.New(creditTotal, currency), nil
}

// Imbalance returns the signed difference sum(debits) - sum(credits).
func (j *LedgerJournal) Imbalance() (*money.Money, error) {
	debits, credits, err := j.Totals()
	if err != nil {
		return nil, err
	}

	return SignedDifference(debits, credits), nil
}

// AccountIDs returns the unique account IDs referenced by the journal, in
// order of first appearance.
func (j *LedgerJournal) AccountIDs() []string {
	seen := make(map[string]bool)

	var ids []string
	for _, e := range j.Entries {
		if !seen[e.AccountID] {
			seen[e.AccountID] = true
			ids = append(ids, e.AccountID)
		}
	}

	return ids
}

// PostOutcome is the result of a posting decision. A Flagged outcome is an
// expected business result, not an error.
type PostOutcome struct {
	PostedAt   *time.Time
	Difference *money.Money
	JournalID  string
	Status     JournalStatus
	Notes      []string
	EntryCount int
}

// Posted reports whether the journal committed.
func (o *PostOutcome) Posted() bool {
	return o.Status == JournalStatusPosted
}
