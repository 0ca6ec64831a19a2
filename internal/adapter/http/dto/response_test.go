package dto

import (
	"testing"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/veltri/propledger/internal/domain"
)

func TestAccountFromDomain(t *testing.T) {
	now := time.Now()
	account := &domain.Account{
		ID:        "acc-1",
		Name:      "Operating Cash",
		Currency:  "USD",
		Postable:  true,
		CreatedAt: now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != account.ID || resp.Currency != "USD" || !resp.Postable {
		t.Fatalf("unexpected account response: %+v", resp)
	}

	list := AccountsFromDomain([]*domain.Account{account})
	if len(list) != 1 || list[0].ID != account.ID {
		t.Fatalf("AccountsFromDomain returned %+v", list)
	}
}

func TestJournalFromDomain(t *testing.T) {
	now := time.Now()
	journal := &domain.LedgerJournal{
		ID:        "jnl-1",
		Status:    domain.JournalStatusFlagged,
		CreatedBy: "clerk-1",
		FlagNotes: []string{"imbalance of 2500 USD minor units"},
		Entries: []*domain.LedgerEntry{
			{
				ID:        "line-1",
				JournalID: "jnl-1",
				AccountID: "acc-rent",
				Direction: domain.DirectionDebit,
				Amount:    money.New(5000, money.USD),
				CreatedAt: now,
			},
		},
		CreatedAt: now,
	}

	resp := JournalFromDomain(journal)
	if resp.ID != journal.ID || resp.Status != string(domain.JournalStatusFlagged) {
		t.Fatalf("unexpected journal response: %+v", resp)
	}
	if len(resp.FlagNotes) != 1 {
		t.Fatalf("expected flag notes to carry over, got %+v", resp.FlagNotes)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].AmountMinor != 5000 || resp.Entries[0].Currency != "USD" {
		t.Fatalf("unexpected entries: %+v", resp.Entries)
	}
}

func TestPostOutcomeFromDomain(t *testing.T) {
	postedAt := time.Now()

	posted := PostOutcomeFromDomain(&domain.PostOutcome{
		JournalID:  "jnl-1",
		Status:     domain.JournalStatusPosted,
		EntryCount: 2,
		PostedAt:   &postedAt,
	})
	if posted.DifferenceMinor != nil {
		t.Fatalf("expected no difference on a posted outcome, got %+v", posted)
	}
	if posted.PostedAt == nil {
		t.Fatalf("expected posted_at to carry over")
	}

	flagged := PostOutcomeFromDomain(&domain.PostOutcome{
		JournalID:  "jnl-2",
		Status:     domain.JournalStatusFlagged,
		Difference: money.New(-300, money.EUR),
		Notes:      []string{"imbalance of -300 EUR minor units"},
	})
	if flagged.DifferenceMinor == nil || *flagged.DifferenceMinor != -300 {
		t.Fatalf("expected signed difference to carry over, got %+v", flagged.DifferenceMinor)
	}
	if flagged.Currency != "EUR" {
		t.Fatalf("expected currency EUR, got %s", flagged.Currency)
	}
}

func TestAllocationResultFromDomain(t *testing.T) {
	result := &domain.AllocationResult{
		TotalRequested: money.New(10000, money.USD),
		TotalAllocated: money.New(10000, money.USD),
		Reconciled:     true,
		Lines: []*domain.AllocationLine{
			{
				UnitID:     "unit-a",
				Method:     domain.MethodPercentage,
				BasisValue: decimal.RequireFromString("60"),
				Amount:     money.New(6000, money.USD),
				Reason:     "60% of 10000",
			},
			{
				UnitID:     "unit-b",
				Method:     domain.MethodPercentage,
				Amount:     money.New(4000, money.USD),
				BasisValue: decimal.RequireFromString("40"),
				Reason:     "40% of 10000",
			},
		},
	}

	resp := AllocationResultFromDomain(result)
	if resp.RequestedMinor != 10000 || resp.AllocatedMinor != 10000 || !resp.Reconciled {
		t.Fatalf("unexpected result response: %+v", resp)
	}
	if len(resp.Lines) != 2 || resp.Lines[0].AmountMinor != 6000 {
		t.Fatalf("unexpected lines: %+v", resp.Lines)
	}
	if resp.Lines[0].Method != string(domain.MethodPercentage) {
		t.Fatalf("expected method to carry over, got %s", resp.Lines[0].Method)
	}
}

func TestSchedulesFromDomain(t *testing.T) {
	schedules := []domain.ApportionmentSchedule{
		{UnitID: "unit-a", Method: domain.PercentageOf(decimal.RequireFromString("35"))},
		{UnitID: "unit-b", Method: domain.EqualShare()},
	}

	list := SchedulesFromDomain(schedules)
	if len(list) != 2 {
		t.Fatalf("SchedulesFromDomain returned %+v", list)
	}
	if list[0].Method != string(domain.MethodPercentage) || !list[0].Basis.Equal(decimal.RequireFromString("35")) {
		t.Fatalf("unexpected schedule response: %+v", list[0])
	}
}

func TestAuditRecordsFromDomain(t *testing.T) {
	records := []*domain.AuditRecord{
		{
			ID:         "aud-1",
			Action:     domain.AuditActionJournalPost,
			ResourceID: "jnl-1",
			ActorID:    "clerk-1",
			Outcome:    "posted",
			Detail:     domain.JSON{"entry_count": 2},
			CreatedAt:  time.Now(),
		},
	}

	list := AuditRecordsFromDomain(records)
	if len(list) != 1 || list[0].ID != "aud-1" || list[0].Outcome != "posted" {
		t.Fatalf("AuditRecordsFromDomain returned %+v", list)
	}
}
