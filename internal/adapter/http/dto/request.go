package dto

import (
	"github.com/shopspring/decimal"

	"github.com/veltri/propledger/internal/domain"
	"github.com/veltri/propledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Postable bool   `json:"postable"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:     r.Name,
		Currency: r.Currency,
		Postable: r.Postable,
	}
}

// JournalEntryRequest is one proposed debit or credit line.
type JournalEntryRequest struct {
	AccountID   string `json:"account_id"`
	Direction   string `json:"direction"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

// CreateJournalRequest represents a request to create a draft journal.
type CreateJournalRequest struct {
	CreatedBy string                `json:"created_by"`
	Entries   []JournalEntryRequest `json:"entries"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateJournalRequest) ToUseCaseInput() usecase.CreateJournalInput {
	entries := make([]usecase.JournalEntryInput, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = usecase.JournalEntryInput{
			AccountID:   e.AccountID,
			Direction:   domain.Direction(e.Direction),
			AmountMinor: e.AmountMinor,
			Currency:    e.Currency,
			Description: e.Description,
		}
	}
	return usecase.CreateJournalInput{
		CreatedBy: r.CreatedBy,
		Entries:   entries,
	}
}

// PostJournalRequest represents a request to post a draft journal.
type PostJournalRequest struct {
	SubmitterID string `json:"submitter_id"`
}

// PreviewAllocationRequest represents a request for an allocation preview.
type PreviewAllocationRequest struct {
	ContextID   string `json:"context_id"`
	Currency    string `json:"currency"`
	RequestedBy string `json:"requested_by"`
	AmountMinor int64  `json:"amount_minor"`
	Persist     bool   `json:"persist"`
}

// ToUseCaseInput converts to use case input.
func (r *PreviewAllocationRequest) ToUseCaseInput() usecase.PreviewAllocationInput {
	return usecase.PreviewAllocationInput{
		ContextID:   r.ContextID,
		Currency:    r.Currency,
		RequestedBy: r.RequestedBy,
		AmountMinor: r.AmountMinor,
		Persist:     r.Persist,
	}
}

// CreateScheduleRequest represents a request to create an apportionment
// schedule row.
type CreateScheduleRequest struct {
	ContextID string          `json:"context_id"`
	UnitID    string          `json:"unit_id"`
	Method    string          `json:"method"`
	Basis     decimal.Decimal `json:"basis"`
	Position  int             `json:"position"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateScheduleRequest) ToUseCaseInput() usecase.CreateScheduleInput {
	return usecase.CreateScheduleInput{
		ContextID: r.ContextID,
		UnitID:    r.UnitID,
		Method:    r.Method,
		Basis:     r.Basis,
		Position:  r.Position,
	}
}

// CreateUnitRequest represents a request to register a property unit.
type CreateUnitRequest struct {
	Name string          `json:"name"`
	Size decimal.Decimal `json:"size"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUnitRequest) ToUseCaseInput() usecase.CreateUnitInput {
	return usecase.CreateUnitInput{
		Name: r.Name,
		Size: r.Size,
	}
}
