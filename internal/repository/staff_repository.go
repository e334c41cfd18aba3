package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/loyalty"
)

// StaffRepository handles persistence for the staff allow-list. It satisfies
// the gate's directory port and adds the admin CRUD surface.
type StaffRepository interface {
	loyalty.StaffDirectory
	Add(ctx context.Context, staff *domain.StaffMember) error
	Update(ctx context.Context, staff *domain.StaffMember) error
	GetByPhone(ctx context.Context, phone string) (*domain.StaffMember, error)
	List(ctx context.Context) ([]domain.StaffMember, error)
	Remove(ctx context.Context, phone string) error
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) IsAuthorized(ctx context.Context, phone string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM staff_members WHERE phone_number=$1 AND authorized_flag)`
	var authorized bool
	if err := r.pool.QueryRow(ctx, query, phone).Scan(&authorized); err != nil {
		return false, err
	}
	return authorized, nil
}

func (r *staffRepository) Add(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        INSERT INTO staff_members (phone_number, name, authorized_flag)
        VALUES ($1,$2,$3)
        RETURNING id, authorized_at`

	err := r.pool.QueryRow(ctx, query,
		staff.PhoneNumber,
		staff.Name,
		staff.Authorized,
	).Scan(&staff.ID, &staff.AuthorizedAt)
	if isUniqueViolation(err) {
		return loyalty.ErrAlreadyExists
	}
	return err
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        UPDATE staff_members SET name=$1, authorized_flag=$2
        WHERE phone_number=$3`

	cmd, err := r.pool.Exec(ctx, query, staff.Name, staff.Authorized, staff.PhoneNumber)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return loyalty.ErrNotFound
	}
	return nil
}

func (r *staffRepository) GetByPhone(ctx context.Context, phone string) (*domain.StaffMember, error) {
	const query = `
        SELECT id, phone_number, name, authorized_flag, authorized_at
        FROM staff_members WHERE phone_number=$1`

	var staff domain.StaffMember
	if err := r.pool.QueryRow(ctx, query, phone).Scan(
		&staff.ID,
		&staff.PhoneNumber,
		&staff.Name,
		&staff.Authorized,
		&staff.AuthorizedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, loyalty.ErrNotFound
		}
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context) ([]domain.StaffMember, error) {
	const query = `
        SELECT id, phone_number, name, authorized_flag, authorized_at
        FROM staff_members ORDER BY authorized_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffMember
	for rows.Next() {
		var staff domain.StaffMember
		if err := rows.Scan(
			&staff.ID,
			&staff.PhoneNumber,
			&staff.Name,
			&staff.Authorized,
			&staff.AuthorizedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}

func (r *staffRepository) Remove(ctx context.Context, phone string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM staff_members WHERE phone_number=$1`, phone)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return loyalty.ErrNotFound
	}
	return nil
}
