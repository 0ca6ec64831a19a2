package domain_test

import (
	"testing"

	"github.com/Rhymond/go-money"

	"github.com/veltri/propledger/internal/domain"
)

func entry(accountID string, direction domain.Direction, minor int64) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		AccountID: accountID,
		Direction: direction,
		Amount:    money.New(minor, "EUR"),
	}
}

func TestLedgerJournal_Validate(t *testing.T) {
	tests := []struct {
		name      string
		entries   []*domain.LedgerEntry
		expectErr error
	}{
		{
			name: "valid balanced journal",
			entries: []*domain.LedgerEntry{
				entry("acc-1", domain.DirectionDebit, 500),
				entry("acc-2", domain.DirectionCredit, 500),
			},
		},
		{
			name:      "empty journal rejected",
			entries:   nil,
			expectErr: domain.ErrEmptyJournal,
		},
		{
			name: "zero amount rejected",
			entries: []*domain.LedgerEntry{
				entry("acc-1", domain.DirectionDebit, 0),
			},
			expectErr: domain.ErrInvalidAmount,
		},
		{
			name: "bad direction rejected",
			entries: []*domain.LedgerEntry{
				entry("acc-1", "sideways", 100),
			},
			expectErr: domain.ErrInvalidDirection,
		},
		{
			name: "mixed currency rejected",
			entries: []*domain.LedgerEntry{
				entry("acc-1", domain.DirectionDebit, 100),
				{AccountID: "acc-2", Direction: domain.DirectionCredit, Amount: money.New(100, "USD")},
			},
			expectErr: domain.ErrCurrencyMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journal := &domain.LedgerJournal{ID: "jrn-1", Status: domain.JournalStatusDraft, Entries: tt.entries}

			err := journal.Validate()
			if err != tt.expectErr {
				t.Errorf("expected %v, got %v", tt.expectErr, err)
			}
		})
	}
}

func TestLedgerJournal_ValidateEntryCap(t *testing.T) {
	entries := make([]*domain.LedgerEntry, 0, domain.MaxJournalEntries+1)
	for i := 0; i <= domain.MaxJournalEntries; i++ {
		entries = append(entries, entry("acc-1", domain.DirectionDebit, 100))
	}

	journal := &domain.LedgerJournal{ID: "jrn-big", Status: domain.JournalStatusDraft, Entries: entries}
	if err := journal.Validate(); err != domain.ErrTooManyEntries {
		t.Fatalf("expected ErrTooManyEntries, got %v", err)
	}

	// Exactly at the cap is still postable.
	journal.Entries = entries[:domain.MaxJournalEntries]
	if err := journal.Validate(); err != nil {
		t.Fatalf("journal at the entry cap must validate, got %v", err)
	}
}

func TestLedgerJournal_Totals(t *testing.T) {
	journal := &domain.LedgerJournal{
		Entries: []*domain.LedgerEntry{
			entry("acc-1", domain.DirectionDebit, 500),
			entry("acc-2", domain.DirectionDebit, 250),
			entry("acc-3", domain.DirectionCredit, 750),
		},
	}

	debits, credits, err := journal.Totals()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if debits.Amount() != 750 {
		t.Errorf("expected debits 750, got %d", debits.Amount())
	}

	if credits.Amount() != 750 {
		t.Errorf("expected credits 750, got %d", credits.Amount())
	}

	diff, err := journal.Imbalance()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !diff.IsZero() {
		t.Errorf("expected zero imbalance, got %d", diff.Amount())
	}
}

func TestLedgerJournal_ImbalanceSign(t *testing.T) {
	journal := &domain.LedgerJournal{
		Entries: []*domain.LedgerEntry{
			entry("acc-1", domain.DirectionDebit, 500),
			entry("acc-2", domain.DirectionCredit, 400),
		},
	}

	diff, err := journal.Imbalance()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff.Amount() != 100 {
		t.Errorf("expected difference 100 (debits minus credits), got %d", diff.Amount())
	}
}

func TestLedgerJournal_AccountIDs(t *testing.T) {
	journal := &domain.LedgerJournal{
		Entries: []*domain.LedgerEntry{
			entry("acc-2", domain.DirectionDebit, 100),
			entry("acc-1", domain.DirectionCredit, 50),
			entry("acc-2", domain.DirectionCredit, 50),
		},
	}

	ids := journal.AccountIDs()
	if len(ids) != 2 {
		t.Fatalf("expected 2 unique accounts, got %d", len(ids))
	}

	if ids[0] != "acc-2" || ids[1] != "acc-1" {
		t.Errorf("expected first-appearance order [acc-2 acc-1], got %v", ids)
	}
}

func TestPostOutcome_Posted(t *testing.T) {
	posted := &domain.PostOutcome{Status: domain.JournalStatusPosted}
	if !posted.Posted() {
		t.Error("expected posted outcome")
	}

	flagged := &domain.PostOutcome{Status: domain.JournalStatusFlagged}
	if flagged.Posted() {
		t.Error("expected flagged outcome to not report posted")
	}
}
