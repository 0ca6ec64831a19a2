package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/veltri/propledger/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Postable  bool      `json:"postable"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Currency:  a.Currency,
		Postable:  a.Postable,
		CreatedAt: a.CreatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// EntryResponse represents a journal line or committed ledger row.
type EntryResponse struct {
	ID          string    `json:"id"`
	JournalID   string    `json:"journal_id"`
	AccountID   string    `json:"account_id"`
	Direction   string    `json:"direction"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// EntryFromDomain converts a domain entry to response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		JournalID:   e.JournalID,
		AccountID:   e.AccountID,
		Direction:   string(e.Direction),
		AmountMinor: e.Amount.Amount(),
		Currency:    e.Amount.Currency().Code,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// JournalResponse represents a journal in API responses.
type JournalResponse struct {
	ID        string           `json:"id"`
	Status    string           `json:"status"`
	CreatedBy string           `json:"created_by"`
	FlagNotes []string         `json:"flag_notes,omitempty"`
	Entries   []*EntryResponse `json:"entries"`
	PostedAt  *time.Time       `json:"posted_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// JournalFromDomain converts a domain journal to response.
func JournalFromDomain(j *domain.LedgerJournal) *JournalResponse {
	return &JournalResponse{
		ID:        j.ID,
		Status:    string(j.Status),
		CreatedBy: j.CreatedBy,
		FlagNotes: j.FlagNotes,
		Entries:   EntriesFromDomain(j.Entries),
		PostedAt:  j.PostedAt,
		CreatedAt: j.CreatedAt,
	}
}

// PostOutcomeResponse represents the posting decision.
type PostOutcomeResponse struct {
	JournalID       string     `json:"journal_id"`
	Status          string     `json:"status"`
	EntryCount      int        `json:"entry_count"`
	DifferenceMinor *int64     `json:"difference_minor,omitempty"`
	Currency        string     `json:"currency,omitempty"`
	Notes           []string   `json:"notes,omitempty"`
	PostedAt        *time.Time `json:"posted_at,omitempty"`
}

// PostOutcomeFromDomain converts a domain outcome to response.
func PostOutcomeFromDomain(o *domain.PostOutcome) *PostOutcomeResponse {
	resp := &PostOutcomeResponse{
		JournalID:  o.JournalID,
		Status:     string(o.Status),
		EntryCount: o.EntryCount,
		Notes:      o.Notes,
		PostedAt:   o.PostedAt,
	}

	if o.Difference != nil {
		diff := o.Difference.Amount()
		resp.DifferenceMinor = &diff
		resp.Currency = o.Difference.Currency().Code
	}

	return resp
}

// AllocationLineResponse represents one allocation line.
type AllocationLineResponse struct {
	UnitID      string          `json:"unit_id"`
	Method      string          `json:"method"`
	Basis       decimal.Decimal `json:"basis"`
	AmountMinor int64           `json:"amount_minor"`
	Reason      string          `json:"reason"`
	Flagged     bool            `json:"flagged"`
	FlagReason  string          `json:"flag_reason,omitempty"`
}

// AllocationResultResponse represents a computed allocation.
type AllocationResultResponse struct {
	RequestedMinor int64                     `json:"requested_minor"`
	AllocatedMinor int64                     `json:"allocated_minor"`
	Currency       string                    `json:"currency"`
	Reconciled     bool                      `json:"reconciled"`
	Lines          []*AllocationLineResponse `json:"lines"`
}

// AllocationResultFromDomain converts a domain allocation result to response.
func AllocationResultFromDomain(result *domain.AllocationResult) *AllocationResultResponse {
	lines := make([]*AllocationLineResponse, len(result.Lines))
	for i, l := range result.Lines {
		lines[i] = &AllocationLineResponse{
			UnitID:      l.UnitID,
			Method:      string(l.Method),
			Basis:       l.BasisValue,
			AmountMinor: l.Amount.Amount(),
			Reason:      l.Reason,
			Flagged:     l.Flagged,
			FlagReason:  l.FlagReason,
		}
	}

	return &AllocationResultResponse{
		RequestedMinor: result.TotalRequested.Amount(),
		AllocatedMinor: result.TotalAllocated.Amount(),
		Currency:       result.TotalRequested.Currency().Code,
		Reconciled:     result.Reconciled,
		Lines:          lines,
	}
}

// ScheduleResponse represents an apportionment schedule row.
type ScheduleResponse struct {
	UnitID string          `json:"unit_id"`
	Method string          `json:"method"`
	Basis  decimal.Decimal `json:"basis"`
}

// SchedulesFromDomain converts domain schedules to responses.
func SchedulesFromDomain(schedules []domain.ApportionmentSchedule) []*ScheduleResponse {
	result := make([]*ScheduleResponse, len(schedules))
	for i, s := range schedules {
		result[i] = &ScheduleResponse{
			UnitID: s.UnitID,
			Method: string(s.Method.Kind()),
			Basis:  s.Method.Basis(),
		}
	}
	return result
}

// UnitResponse represents a property unit.
type UnitResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Size      decimal.Decimal `json:"size"`
	CreatedAt time.Time       `json:"created_at"`
}

// UnitFromDomain converts a domain unit to response.
func UnitFromDomain(u *domain.Unit) *UnitResponse {
	return &UnitResponse{
		ID:        u.ID,
		Name:      u.Name,
		Size:      u.Size,
		CreatedAt: u.CreatedAt,
	}
}

// AuditRecordResponse represents an audit record.
type AuditRecordResponse struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	ResourceID string         `json:"resource_id"`
	ActorID    string         `json:"actor_id"`
	Outcome    string         `json:"outcome"`
	Detail     map[string]any `json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// AuditRecordsFromDomain converts domain audit records to responses.
func AuditRecordsFromDomain(records []*domain.AuditRecord) []*AuditRecordResponse {
	result := make([]*AuditRecordResponse, len(records))
	for i, r := range records {
		result[i] = &AuditRecordResponse{
			ID:         r.ID,
			Action:     string(r.Action),
			ResourceID: r.ResourceID,
			ActorID:    r.ActorID,
			Outcome:    r.Outcome,
			Detail:     r.Detail,
			CreatedAt:  r.CreatedAt,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
