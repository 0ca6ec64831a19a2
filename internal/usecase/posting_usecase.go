package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/rs/zerolog"

	"github.com/veltri/propledger/internal/domain"
)

// PostingUseCase decides Posted vs Flagged for draft journals and performs
// the transition atomically with the persisted ledger rows.
type PostingUseCase struct {
	txManager           TransactionManager
	journalRepo         JournalRepository
	entryRepo           LedgerEntryRepository
	accounts            AccountDirectory
	history             ImbalanceHistory
	auditRepo           AuditRepository
	idGen               IDGenerator
	logger              zerolog.Logger
	recurrenceWindow    time.Duration
	recurrenceThreshold int
}

// NewPostingUseCase creates a new PostingUseCase.
func NewPostingUseCase(
	txManager TransactionManager,
	journalRepo JournalRepository,
	entryRepo LedgerEntryRepository,
	accounts AccountDirectory,
	history ImbalanceHistory,
	auditRepo AuditRepository,
	idGen IDGenerator,
	logger zerolog.Logger,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:           txManager,
		journalRepo:         journalRepo,
		entryRepo:           entryRepo,
		accounts:            accounts,
		history:             history,
		auditRepo:           auditRepo,
		idGen:               idGen,
		logger:              logger,
		recurrenceWindow:    DefaultRecurrenceWindow,
		recurrenceThreshold: DefaultRecurrenceThreshold,
	}
}

// WithRecurrencePolicy overrides the governance recurrence window and
// threshold.
func (uc *PostingUseCase) WithRecurrencePolicy(window time.Duration, threshold int) *PostingUseCase {
	uc.recurrenceWindow = window
	uc.recurrenceThreshold = threshold

	return uc
}

// JournalEntryInput is one proposed debit or credit in a draft journal.
type JournalEntryInput struct {
	AccountID   string
	Direction   domain.Direction
	AmountMinor int64
	Currency    string
	Description string
}

// CreateJournalInput represents input for creating a draft journal.
type CreateJournalInput struct {
	CreatedBy string
	Entries   []JournalEntryInput
}

// CreateDraft validates and persists a new draft journal. Accounts are not
// resolved here; referential checks run when the journal is posted.
func (uc *PostingUseCase) CreateDraft(ctx context.Context, input CreateJournalInput) (*domain.LedgerJournal, error) {
	now := time.Now().UTC()

	journal := &domain.LedgerJournal{
		ID:        uc.idGen.Generate(),
		Status:    domain.JournalStatusDraft,
		CreatedBy: input.CreatedBy,
		CreatedAt: now,
	}

	for _, e := range input.Entries {
		if err := domain.ValidateCurrency(e.Currency); err != nil {
			return nil, err
		}

		journal.Entries = append(journal.Entries, &domain.LedgerEntry{
			ID:          uc.idGen.Generate(),
			JournalID:   journal.ID,
			AccountID:   e.AccountID,
			Direction:   e.Direction,
			Amount:      money.New(e.AmountMinor, e.Currency),
			Description: e.Description,
			CreatedAt:   now,
		})
	}

	if err := journal.Validate(); err != nil {
		return nil, err
	}

	if err := uc.journalRepo.Create(ctx, journal); err != nil {
		return nil, storageError(err)
	}

	return journal, nil
}

// GetJournal retrieves a journal with its proposed lines.
func (uc *PostingUseCase) GetJournal(ctx context.Context, id string) (*domain.LedgerJournal, error) {
	return uc.journalRepo.GetByID(ctx, id)
}

// PostInput represents input for posting a draft journal.
type PostInput struct {
	JournalID   string
	SubmitterID string
}

// Post runs the posting decision for a draft journal.
//
// The journal row is locked for the duration of the transaction, so a
// concurrent post of the same journal observes the terminal status and
// fails closed with ErrInvalidJournalState instead of double-posting. A
// Flagged outcome is returned as a normal result; only caller misuse,
// unknown accounts and storage failures surface as errors. On a storage
// failure nothing is committed and the journal remains Draft, so retrying
// the call is safe.
func (uc *PostingUseCase) Post(ctx context.Context, input PostInput) (*domain.PostOutcome, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	defer tx.Rollback(ctx)

	journal, err := uc.journalRepo.GetByIDForUpdate(ctx, tx, input.JournalID)
	if err != nil {
		if errors.Is(err, domain.ErrJournalNotFound) {
			return nil, err
		}

		return nil, storageError(err)
	}

	if journal.Status != domain.JournalStatusDraft {
		return nil, domain.ErrInvalidJournalState
	}

	if err := journal.Validate(); err != nil {
		return nil, err
	}

	// Referential check runs before the balance check.
	for _, accountID := range journal.AccountIDs() {
		ok, err := uc.accounts.Exists(ctx, accountID)
		if err != nil {
			return nil, storageError(err)
		}

		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAccount, accountID)
		}
	}

	difference, err := journal.Imbalance()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if !difference.IsZero() {
		return uc.flag(ctx, tx, journal, input.SubmitterID, difference, now)
	}

	return uc.commit(ctx, tx, journal, input.SubmitterID, now)
}

// flag transitions the journal Draft->Flagged. The imbalance is an expected
// business condition, not an error; the outcome carries the signed
// difference and any governance notes for human review.
func (uc *PostingUseCase) flag(
	ctx context.Context,
	tx Transaction,
	journal *domain.LedgerJournal,
	submitterID string,
	difference *money.Money,
	now time.Time,
) (*domain.PostOutcome, error) {
	notes := []string{
		fmt.Sprintf("unbalanced journal: debits differ from credits by %s", difference.Display()),
	}

	// Recurrence is a governance signal only. It can add an advisory note
	// but never changes the outcome kind, and an unavailable history store
	// never blocks the flagging itself.
	count, err := uc.history.RecentFlagCount(ctx, submitterID, uc.recurrenceWindow)
	if err != nil {
		uc.logger.Warn().Err(err).Str("submitter_id", submitterID).
			Msg("imbalance history unavailable, skipping recurrence check")
	} else if count >= uc.recurrenceThreshold {
		notes = append(notes, fmt.Sprintf(
			"recurring imbalance pattern: %d flagged journals in the last %d days",
			count, int(uc.recurrenceWindow.Hours()/24),
		))
	}

	if err := uc.journalRepo.UpdateStatus(ctx, tx, journal.ID, domain.JournalStatusFlagged, notes, nil); err != nil {
		return nil, storageError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storageError(err)
	}

	journal.Status = domain.JournalStatusFlagged
	journal.FlagNotes = notes

	if err := uc.history.RecordFlag(ctx, submitterID, now); err != nil {
		uc.logger.Warn().Err(err).Str("submitter_id", submitterID).
			Msg("failed to record imbalance flag")
	}

	uc.audit(ctx, journal.ID, submitterID, domain.AuditOutcomeFlagged, domain.JSON{
		"entry_count":      len(journal.Entries),
		"difference_minor": difference.Amount(),
		"currency":         difference.Currency().Code,
		"notes":            notes,
	})

	return &domain.PostOutcome{
		JournalID:  journal.ID,
		Status:     domain.JournalStatusFlagged,
		Difference: difference,
		Notes:      notes,
		EntryCount: len(journal.Entries),
	}, nil
}

// commit writes the ledger rows and the status update in one transaction.
func (uc *PostingUseCase) commit(
	ctx context.Context,
	tx Transaction,
	journal *domain.LedgerJournal,
	submitterID string,
	now time.Time,
) (*domain.PostOutcome, error) {
	for _, e := range journal.Entries {
		row := &domain.LedgerEntry{
			ID:          uc.idGen.Generate(),
			JournalID:   journal.ID,
			AccountID:   e.AccountID,
			Direction:   e.Direction,
			Amount:      e.Amount,
			Description: e.Description,
			CreatedAt:   now,
		}

		if err := uc.entryRepo.Create(ctx, tx, row); err != nil {
			return nil, storageError(err)
		}
	}

	if err := uc.journalRepo.UpdateStatus(ctx, tx, journal.ID, domain.JournalStatusPosted, nil, &now); err != nil {
		return nil, storageError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storageError(err)
	}

	journal.Status = domain.JournalStatusPosted
	journal.PostedAt = &now

	uc.audit(ctx, journal.ID, submitterID, domain.AuditOutcomePosted, domain.JSON{
		"entry_count": len(journal.Entries),
		"currency":    journal.Currency(),
	})

	return &domain.PostOutcome{
		JournalID:  journal.ID,
		Status:     domain.JournalStatusPosted,
		PostedAt:   &now,
		EntryCount: len(journal.Entries),
	}, nil
}

// audit emits the posting decision record. The audit sink is eventually
// consistent: a failed write is logged, never propagated.
func (uc *PostingUseCase) audit(ctx context.Context, journalID, actorID, outcome string, detail domain.JSON) {
	record := &domain.AuditRecord{
		Action:     domain.AuditActionJournalPost,
		ResourceID: journalID,
		ActorID:    actorID,
		Outcome:    outcome,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}

	if err := uc.auditRepo.Create(ctx, record); err != nil {
		uc.logger.Warn().Err(err).Str("journal_id", journalID).Msg("audit record write failed")
	}
}

// storageError wraps err so callers can match both domain.ErrStorage and
// the underlying driver error, which the retrier inspects for retryable
// codes.
func storageError(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrStorage, err)
}
