package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/loyalty"
)

// AuditFilter defines query params for audit listing.
type AuditFilter struct {
	ActorPhone       *string
	TargetCustomerID *string
	Action           *domain.AuditAction
	Result           *domain.AuditResult
	Limit            int
	Offset           int
}

// AuditRepository stores immutable audit entries. There is no update or
// delete path; entries only accumulate.
type AuditRepository interface {
	loyalty.AuditLog
	List(ctx context.Context, filter AuditFilter) ([]domain.AuditEntry, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository builds the repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	const query = `
        INSERT INTO audit_entries (actor_phone, action, target_customer_id, result, reason, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		entry.ActorPhone,
		entry.Action,
		entry.TargetCustomerID,
		entry.Result,
		entry.Reason,
		entry.CreatedAt,
	).Scan(&entry.ID)
}

func (r *auditRepository) List(ctx context.Context, filter AuditFilter) ([]domain.AuditEntry, error) {
	query := `
        SELECT id, actor_phone, action, target_customer_id, result, reason, created_at
        FROM audit_entries`
	args := []any{}
	clauses := []string{}

	if filter.ActorPhone != nil {
		args = append(args, *filter.ActorPhone)
		clauses = append(clauses, fmt.Sprintf("actor_phone=$%d", len(args)))
	}
	if filter.TargetCustomerID != nil {
		args = append(args, *filter.TargetCustomerID)
		clauses = append(clauses, fmt.Sprintf("target_customer_id=$%d", len(args)))
	}
	if filter.Action != nil {
		args = append(args, *filter.Action)
		clauses = append(clauses, fmt.Sprintf("action=$%d", len(args)))
	}
	if filter.Result != nil {
		args = append(args, *filter.Result)
		clauses = append(clauses, fmt.Sprintf("result=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY created_at DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.ActorPhone,
			&entry.Action,
			&entry.TargetCustomerID,
			&entry.Result,
			&entry.Reason,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
