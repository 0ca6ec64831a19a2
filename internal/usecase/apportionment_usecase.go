package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/veltri/propledger/internal/domain"
)

// AllocationUseCase hosts the apportionment engine: it resolves schedules
// and unit sizes, runs the pure computation and optionally persists an
// audit record of the preview. The computation itself never touches I/O,
// so callers may preview repeatedly before committing anywhere.
type AllocationUseCase struct {
	schedules ScheduleStore
	units     UnitDirectory
	auditRepo AuditRepository
	logger    zerolog.Logger
}

// NewAllocationUseCase creates a new AllocationUseCase.
func NewAllocationUseCase(
	schedules ScheduleStore,
	units UnitDirectory,
	auditRepo AuditRepository,
	logger zerolog.Logger,
) *AllocationUseCase {
	return &AllocationUseCase{
		schedules: schedules,
		units:     units,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// PreviewAllocationInput represents input for an allocation preview.
type PreviewAllocationInput struct {
	ContextID   string
	Currency    string
	RequestedBy string
	AmountMinor int64
	Persist     bool
}

// Preview apportions a budget total across the context's schedules.
func (uc *AllocationUseCase) Preview(ctx context.Context, input PreviewAllocationInput) (*domain.AllocationResult, error) {
	if err := domain.ValidateContextID(input.ContextID); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	total := money.New(input.AmountMinor, strings.ToUpper(strings.TrimSpace(input.Currency)))

	schedules, err := uc.schedules.ListByContext(ctx, input.ContextID)
	if err != nil {
		return nil, storageError(err)
	}

	if len(schedules) == 0 {
		return nil, domain.ErrNoSchedules
	}

	// Unit sizes come from the unit directory at allocation time, never
	// from the stored schedule. The stored basis is always overwritten;
	// an unknown unit or size zeroes it and the engine flags that line.
	for i, s := range schedules {
		if s.Method.Kind() != domain.MethodUnitSize {
			continue
		}

		size, known, err := uc.units.Size(ctx, s.UnitID)
		if err != nil {
			return nil, storageError(err)
		}

		if !known {
			size = decimal.Zero
		}

		schedules[i].Method = s.Method.WithBasis(size)
	}

	result, err := domain.Apportion(total, schedules)
	if err != nil {
		return nil, err
	}

	if input.Persist {
		uc.audit(ctx, input, result)
	}

	return result, nil
}

func (uc *AllocationUseCase) audit(ctx context.Context, input PreviewAllocationInput, result *domain.AllocationResult) {
	lines := make([]domain.JSON, 0, len(result.Lines))
	for _, l := range result.Lines {
		lines = append(lines, domain.JSON{
			"unit_id":      l.UnitID,
			"amount_minor": l.Amount.Amount(),
			"method":       string(l.Method),
			"basis":        l.BasisValue.String(),
			"reason":       l.Reason,
			"flagged":      l.Flagged,
			"flag_reason":  l.FlagReason,
		})
	}

	record := &domain.AuditRecord{
		Action:     domain.AuditActionAllocationPreview,
		ResourceID: input.ContextID,
		ActorID:    input.RequestedBy,
		Outcome:    domain.AuditOutcomeComputed,
		Detail: domain.JSON{
			"requested_minor": result.TotalRequested.Amount(),
			"allocated_minor": result.TotalAllocated.Amount(),
			"currency":        result.TotalRequested.Currency().Code,
			"reconciled":      result.Reconciled,
			"flagged_lines":   len(result.FlaggedLines()),
			"lines":           lines,
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.auditRepo.Create(ctx, record); err != nil {
		uc.logger.Warn().Err(err).Str("context_id", input.ContextID).Msg("audit record write failed")
	}
}
