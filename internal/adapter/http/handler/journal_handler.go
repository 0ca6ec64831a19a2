package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veltri/propledger/internal/adapter/http/dto"
	"github.com/veltri/propledger/internal/domain"
	"github.com/veltri/propledger/internal/infrastructure/metrics"
	"github.com/veltri/propledger/internal/usecase"
)

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	CreateDraft(ctx context.Context, input usecase.CreateJournalInput) (*domain.LedgerJournal, error)
	GetJournal(ctx context.Context, id string) (*domain.LedgerJournal, error)
	Post(ctx context.Context, input usecase.PostInput) (*domain.PostOutcome, error)
}

// JournalHandler handles journal-related HTTP requests.
type JournalHandler struct {
	journalUC JournalService
	retrier   usecase.Retrier
	metrics   *metrics.Metrics
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUC JournalService, retrier usecase.Retrier, m *metrics.Metrics) *JournalHandler {
	return &JournalHandler{
		journalUC: journalUC,
		retrier:   retrier,
		metrics:   m,
	}
}

// Create creates a new draft journal.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	journal, err := h.journalUC.CreateDraft(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create journal", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.JournalsCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.JournalFromDomain(journal))
}

// Get retrieves a journal by ID.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing journal ID", "")
		return
	}

	journal, err := h.journalUC.GetJournal(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get journal", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalFromDomain(journal))
}

// Post runs the posting decision for a draft journal. Lock conflicts from
// concurrent posts are retried transparently.
func (h *JournalHandler) Post(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing journal ID", "")
		return
	}

	var req dto.PostJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input := usecase.PostInput{JournalID: id, SubmitterID: req.SubmitterID}

	var outcome *domain.PostOutcome

	run := func() error {
		var err error
		outcome, err = h.journalUC.Post(r.Context(), input)
		return err
	}

	var err error
	if h.retrier != nil {
		err = h.retrier.Retry(r.Context(), run)
	} else {
		err = run()
	}

	if err != nil {
		writeError(w, mapDomainError(err), "failed to post journal", err.Error())
		return
	}

	h.recordOutcome(outcome)

	writeJSON(w, http.StatusOK, dto.PostOutcomeFromDomain(outcome))
}

func (h *JournalHandler) recordOutcome(outcome *domain.PostOutcome) {
	if h.metrics == nil {
		return
	}

	switch outcome.Status {
	case domain.JournalStatusPosted:
		h.metrics.JournalsPosted.Inc()
	case domain.JournalStatusFlagged:
		h.metrics.JournalsFlagged.Inc()
		if outcome.Difference != nil {
			h.metrics.ImbalanceAmount.Observe(abs(float64(outcome.Difference.Amount())))
		}
		if len(outcome.Notes) > 1 {
			h.metrics.RecurrenceNotes.Inc()
		}
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
