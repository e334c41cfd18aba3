package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/loyalty"
)

// AdminRepository defines persistence access for dashboard operators.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	Update(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admins (name, email, password_hash, active_flag)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Active,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	if isUniqueViolation(err) {
		return loyalty.ErrAlreadyExists
	}
	return err
}

func (r *adminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	const query = `
        UPDATE admins SET name=$1, email=$2, password_hash=$3, active_flag=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Active,
		admin.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return loyalty.ErrNotFound
	}
	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	const query = `
        SELECT id, name, email, password_hash, active_flag, created_at, updated_at
        FROM admins WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const query = `
        SELECT id, name, email, password_hash, active_flag, created_at, updated_at
        FROM admins WHERE email=$1`
	return r.scanOne(ctx, query, email)
}

func (r *adminRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Admin, error) {
	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Active,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, loyalty.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}
