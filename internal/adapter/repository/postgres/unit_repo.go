package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/veltri/propledger/internal/domain"
)

// UnitRepository implements usecase.UnitRepository.
type UnitRepository struct {
	pool *pgxpool.Pool
}

// NewUnitRepository creates a new UnitRepository.
func NewUnitRepository(pool *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{pool: pool}
}

// Create registers a property unit.
func (r *UnitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	query := `
		INSERT INTO units (id, name, size, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		unit.ID,
		unit.Name,
		decimalToNumeric(unit.Size),
		timeToPgTimestamptz(unit.CreatedAt),
	)

	return err
}

// GetByID retrieves a unit by ID.
func (r *UnitRepository) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	query := `
		SELECT id, name, size, created_at
		FROM units
		WHERE id = $1
	`

	var (
		unit      domain.Unit
		size      pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	if err := r.pool.QueryRow(ctx, query, id).Scan(&unit.ID, &unit.Name, &size, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnitNotFound
		}

		return nil, err
	}

	unit.Size = numericToDecimal(size)
	unit.CreatedAt = createdAt.Time

	return &unit, nil
}

// Size resolves a unit's size for unit-size-weighted allocation. A missing
// unit or non-positive size reports known=false; the allocation engine flags
// the line instead of failing the whole run.
func (r *UnitRepository) Size(ctx context.Context, unitID string) (decimal.Decimal, bool, error) {
	query := `SELECT size FROM units WHERE id = $1`

	var size pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, unitID).Scan(&size); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}

		return decimal.Zero, false, err
	}

	d := numericToDecimal(size)
	if !d.IsPositive() {
		return decimal.Zero, false, nil
	}

	return d, true, nil
}
