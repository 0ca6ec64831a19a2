package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/veltri/propledger/internal/adapter/http/dto"
	"github.com/veltri/propledger/internal/domain"
	"github.com/veltri/propledger/internal/infrastructure/metrics"
	"github.com/veltri/propledger/internal/usecase"
)

// AllocationService defines the behavior needed by AllocationHandler.
type AllocationService interface {
	Preview(ctx context.Context, input usecase.PreviewAllocationInput) (*domain.AllocationResult, error)
}

// AllocationHandler handles allocation-related HTTP requests.
type AllocationHandler struct {
	allocationUC AllocationService
	metrics      *metrics.Metrics
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(allocationUC AllocationService, m *metrics.Metrics) *AllocationHandler {
	return &AllocationHandler{
		allocationUC: allocationUC,
		metrics:      m,
	}
}

// Preview computes an allocation breakdown for a context.
func (h *AllocationHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.allocationUC.Preview(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute allocation", err.Error())
		return
	}

	h.recordResult(result)

	writeJSON(w, http.StatusOK, dto.AllocationResultFromDomain(result))
}

func (h *AllocationHandler) recordResult(result *domain.AllocationResult) {
	if h.metrics == nil {
		return
	}

	h.metrics.AllocationsComputed.Inc()
	h.metrics.AllocationLines.Observe(float64(len(result.Lines)))

	if flagged := len(result.FlaggedLines()); flagged > 0 {
		h.metrics.FlaggedLines.Add(float64(flagged))
	}

	if !result.Reconciled {
		h.metrics.Unreconciled.Inc()
	}
}
