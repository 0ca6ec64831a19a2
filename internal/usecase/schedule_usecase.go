package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veltri/propledger/internal/domain"
)

// ScheduleUseCase maintains apportionment schedules and property units.
type ScheduleUseCase struct {
	schedules ScheduleStore
	unitRepo  UnitRepository
	idGen     IDGenerator
}

// NewScheduleUseCase creates a new ScheduleUseCase.
func NewScheduleUseCase(schedules ScheduleStore, unitRepo UnitRepository, idGen IDGenerator) *ScheduleUseCase {
	return &ScheduleUseCase{
		schedules: schedules,
		unitRepo:  unitRepo,
		idGen:     idGen,
	}
}

// CreateScheduleInput represents input for creating a schedule.
type CreateScheduleInput struct {
	ContextID string
	UnitID    string
	Method    string
	Basis     decimal.Decimal
	Position  int
}

// CreateSchedule parses and stores one (context, unit) schedule. Method
// strings are validated here so an unknown method fails at the boundary
// instead of being skipped at allocation time.
func (uc *ScheduleUseCase) CreateSchedule(ctx context.Context, input CreateScheduleInput) (*domain.ApportionmentSchedule, error) {
	if err := domain.ValidateContextID(input.ContextID); err != nil {
		return nil, err
	}

	if _, err := uc.unitRepo.GetByID(ctx, input.UnitID); err != nil {
		return nil, err
	}

	method, err := domain.ParseMethod(input.Method, input.Basis)
	if err != nil {
		return nil, err
	}

	schedule := domain.ApportionmentSchedule{UnitID: input.UnitID, Method: method}

	if err := uc.schedules.Create(ctx, input.ContextID, input.Position, schedule); err != nil {
		return nil, storageError(err)
	}

	return &schedule, nil
}

// ListSchedules returns the ordered schedules of an allocation context.
func (uc *ScheduleUseCase) ListSchedules(ctx context.Context, contextID string) ([]domain.ApportionmentSchedule, error) {
	if err := domain.ValidateContextID(contextID); err != nil {
		return nil, err
	}

	return uc.schedules.ListByContext(ctx, contextID)
}

// CreateUnitInput represents input for registering a unit.
type CreateUnitInput struct {
	Name string
	Size decimal.Decimal
}

// CreateUnit registers a property unit.
func (uc *ScheduleUseCase) CreateUnit(ctx context.Context, input CreateUnitInput) (*domain.Unit, error) {
	if input.Size.IsNegative() {
		return nil, domain.ErrInvalidBasis
	}

	unit := &domain.Unit{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Size:      input.Size,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.unitRepo.Create(ctx, unit); err != nil {
		return nil, storageError(err)
	}

	return unit, nil
}

// GetUnit retrieves a unit by ID.
func (uc *ScheduleUseCase) GetUnit(ctx context.Context, id string) (*domain.Unit, error) {
	return uc.unitRepo.GetByID(ctx, id)
}
