package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veltri/propledger/internal/domain"
)

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Create inserts a new audit record.
func (r *AuditRepository) Create(ctx context.Context, record *domain.AuditRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	var detail []byte
	if record.Detail != nil {
		var err error

		detail, err = json.Marshal(record.Detail)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_records (id, action, resource_id, actor_id, outcome, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		string(record.Action),
		record.ResourceID,
		record.ActorID,
		record.Outcome,
		detail,
		timeToPgTimestamptz(record.CreatedAt),
	)

	return err
}

// List retrieves audit records with filtering, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error) {
	query := `
		SELECT id, action, resource_id, actor_id, outcome, detail, created_at
		FROM audit_records
		WHERE 1=1
	`
	args := []any{}

	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}

	if filter.ResourceID != "" {
		args = append(args, filter.ResourceID)
		query += fmt.Sprintf(" AND resource_id = $%d", len(args))
	}

	if filter.ActorID != "" {
		args = append(args, filter.ActorID)
		query += fmt.Sprintf(" AND actor_id = $%d", len(args))
	}

	if filter.StartDate != nil {
		args = append(args, timeToPgTimestamptz(*filter.StartDate))
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}

	if filter.EndDate != nil {
		args = append(args, timeToPgTimestamptz(*filter.EndDate))
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.AuditRecord
	for rows.Next() {
		record, err := scanAuditRecord(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

// GetByResourceID retrieves all audit records for a resource.
func (r *AuditRepository) GetByResourceID(ctx context.Context, resourceID string) ([]*domain.AuditRecord, error) {
	return r.List(ctx, domain.AuditFilter{ResourceID: resourceID})
}

func scanAuditRecord(row pgx.Row) (*domain.AuditRecord, error) {
	var (
		record    domain.AuditRecord
		action    string
		detail    []byte
		createdAt pgtype.Timestamptz
	)

	if err := row.Scan(&record.ID, &action, &record.ResourceID, &record.ActorID, &record.Outcome, &detail, &createdAt); err != nil {
		return nil, err
	}

	record.Action = domain.AuditAction(action)
	record.CreatedAt = createdAt.Time

	if len(detail) > 0 {
		if err := json.Unmarshal(detail, &record.Detail); err != nil {
			return nil, err
		}
	}

	return &record, nil
}
