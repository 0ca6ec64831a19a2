package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veltri/propledger/internal/adapter/http/dto"
	"github.com/veltri/propledger/internal/domain"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	GetByJournal(ctx context.Context, journalID string) ([]*domain.LedgerEntry, error)
	GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
}

// EntryHandler serves committed ledger rows.
type EntryHandler struct {
	entries EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entries EntryService) *EntryHandler {
	return &EntryHandler{entries: entries}
}

// ListByJournal lists the committed rows of a posted journal.
func (h *EntryHandler) ListByJournal(w http.ResponseWriter, r *http.Request) {
	journalID := chi.URLParam(r, "id")
	if journalID == "" {
		writeError(w, http.StatusBadRequest, "missing journal ID", "")
		return
	}

	entries, err := h.entries.GetByJournal(r.Context(), journalID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// ListByAccount lists committed rows against an account.
func (h *EntryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.entries.GetByAccount(r.Context(), accountID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}
