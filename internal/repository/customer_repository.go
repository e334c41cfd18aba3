package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/loyalty"
)

// CustomerStats aggregates passport analytics for the admin dashboard.
type CustomerStats struct {
	TotalCustomers  int64
	ActiveCustomers int64
	TotalStamps     int64
}

// CustomerRepository handles persistence for loyalty passports. It satisfies
// the engine's store port and adds the admin-facing aggregate query.
type CustomerRepository interface {
	loyalty.CustomerStore
	Stats(ctx context.Context, activeSince time.Time) (CustomerStats, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `id, customer_code, phone_number, name, stamps, rewards, last_stamp_at, reset_date, active_flag, version, created_at, last_activity_at`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	const query = `
        INSERT INTO customers (customer_code, phone_number, name, stamps, rewards, last_stamp_at, reset_date, active_flag, last_activity_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, version, created_at`

	err := r.pool.QueryRow(ctx, query,
		c.CustomerCode,
		c.PhoneNumber,
		c.Name,
		c.Stamps,
		c.Rewards,
		c.LastStampAt,
		c.ResetDate,
		c.Active,
		c.LastActivityAt,
	).Scan(&c.ID, &c.Version, &c.CreatedAt)
	if isUniqueViolation(err) {
		return loyalty.ErrAlreadyExists
	}
	return err
}

// Update applies the record only when the stored version still matches the
// version it was read with.
func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	const query = `
        UPDATE customers
        SET name=$1, stamps=$2, rewards=$3, last_stamp_at=$4, active_flag=$5, last_activity_at=$6, version=version+1
        WHERE id=$7 AND version=$8`

	cmd, err := r.pool.Exec(ctx, query,
		c.Name,
		c.Stamps,
		c.Rewards,
		c.LastStampAt,
		c.Active,
		c.LastActivityAt,
		c.ID,
		c.Version,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return loyalty.ErrVersionConflict
	}
	c.Version++
	return nil
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE phone_number=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, phone))
}

func (r *customerRepository) GetByCode(ctx context.Context, code string) (*domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE customer_code=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, code))
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *customerRepository) Delete(ctx context.Context, code string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE customer_code=$1`, code)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return loyalty.ErrNotFound
	}
	return nil
}

func (r *customerRepository) Stats(ctx context.Context, activeSince time.Time) (CustomerStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE last_activity_at >= $1),
               COALESCE(SUM(stamps), 0)
        FROM customers`

	var stats CustomerStats
	err := r.pool.QueryRow(ctx, query, activeSince).Scan(
		&stats.TotalCustomers,
		&stats.ActiveCustomers,
		&stats.TotalStamps,
	)
	return stats, err
}

func (r *customerRepository) scanOne(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	if err := scanCustomer(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, loyalty.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanCustomer(row pgx.Row, c *domain.Customer) error {
	return row.Scan(
		&c.ID,
		&c.CustomerCode,
		&c.PhoneNumber,
		&c.Name,
		&c.Stamps,
		&c.Rewards,
		&c.LastStampAt,
		&c.ResetDate,
		&c.Active,
		&c.Version,
		&c.CreatedAt,
		&c.LastActivityAt,
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
