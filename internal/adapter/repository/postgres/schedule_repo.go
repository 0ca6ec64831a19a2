package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veltri/propledger/internal/domain"
)

// ScheduleRepository implements usecase.ScheduleStore. Schedule order within
// a context is the stored position, which also fixes how equal-share
// remainders are distributed.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// Create stores one schedule row for an allocation context.
func (r *ScheduleRepository) Create(ctx context.Context, contextID string, position int, schedule domain.ApportionmentSchedule) error {
	query := `
		INSERT INTO apportionment_schedules (context_id, position, unit_id, method, basis)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (context_id, position) DO UPDATE
		SET unit_id = EXCLUDED.unit_id, method = EXCLUDED.method, basis = EXCLUDED.basis
	`

	_, err := r.pool.Exec(ctx, query,
		contextID,
		position,
		schedule.UnitID,
		string(schedule.Method.Kind()),
		decimalToNumeric(schedule.Method.Basis()),
	)

	return err
}

// ListByContext returns the context's schedules in position order.
func (r *ScheduleRepository) ListByContext(ctx context.Context, contextID string) ([]domain.ApportionmentSchedule, error) {
	query := `
		SELECT unit_id, method, basis
		FROM apportionment_schedules
		WHERE context_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, contextID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []domain.ApportionmentSchedule
	for rows.Next() {
		var (
			unitID string
			kind   string
			basis  pgtype.Numeric
		)

		if err := rows.Scan(&unitID, &kind, &basis); err != nil {
			return nil, err
		}

		method, err := domain.ParseMethod(kind, numericToDecimal(basis))
		if err != nil {
			return nil, err
		}

		schedules = append(schedules, domain.ApportionmentSchedule{UnitID: unitID, Method: method})
	}

	return schedules, rows.Err()
}
