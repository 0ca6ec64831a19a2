package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veltri/propledger/internal/adapter/http/dto"
	"github.com/veltri/propledger/internal/domain"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error)
	GetByResourceID(ctx context.Context, resourceID string) ([]*domain.AuditRecord, error)
}

// AuditHandler serves compliance audit records.
type AuditHandler struct {
	audit AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(audit AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List retrieves audit records with query filters.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{
		Action:     r.URL.Query().Get("action"),
		ResourceID: r.URL.Query().Get("resource_id"),
		ActorID:    r.URL.Query().Get("actor_id"),
		Limit:      parseIntQuery(r, "limit", 50),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	records, err := h.audit.List(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list audit records", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditRecordsFromDomain(records))
}

// GetByResource retrieves the audit trail of one resource.
func (h *AuditHandler) GetByResource(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "resourceID")
	if resourceID == "" {
		writeError(w, http.StatusBadRequest, "missing resource ID", "")
		return
	}

	records, err := h.audit.GetByResourceID(r.Context(), resourceID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get audit records", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditRecordsFromDomain(records))
}
