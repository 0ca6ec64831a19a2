package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veltri/propledger/internal/adapter/http/dto"
	"github.com/veltri/propledger/internal/domain"
	"github.com/veltri/propledger/internal/usecase"
)

// ScheduleService defines the behavior needed by ScheduleHandler.
type ScheduleService interface {
	CreateSchedule(ctx context.Context, input usecase.CreateScheduleInput) (*domain.ApportionmentSchedule, error)
	ListSchedules(ctx context.Context, contextID string) ([]domain.ApportionmentSchedule, error)
	CreateUnit(ctx context.Context, input usecase.CreateUnitInput) (*domain.Unit, error)
	GetUnit(ctx context.Context, id string) (*domain.Unit, error)
}

// ScheduleHandler handles schedule and unit HTTP requests.
type ScheduleHandler struct {
	scheduleUC ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleUC ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleUC: scheduleUC}
}

// CreateSchedule stores one apportionment schedule row.
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	schedule, err := h.scheduleUC.CreateSchedule(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create schedule", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, &dto.ScheduleResponse{
		UnitID: schedule.UnitID,
		Method: string(schedule.Method.Kind()),
		Basis:  schedule.Method.Basis(),
	})
}

// ListSchedules returns the ordered schedules of a context.
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	contextID := chi.URLParam(r, "contextID")

	schedules, err := h.scheduleUC.ListSchedules(r.Context(), contextID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list schedules", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SchedulesFromDomain(schedules))
}

// CreateUnit registers a property unit.
func (h *ScheduleHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	unit, err := h.scheduleUC.CreateUnit(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create unit", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.UnitFromDomain(unit))
}

// GetUnit retrieves a unit by ID.
func (h *ScheduleHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing unit ID", "")
		return
	}

	unit, err := h.scheduleUC.GetUnit(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get unit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UnitFromDomain(unit))
}
