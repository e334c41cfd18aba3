package loyalty

import (
	"context"
	"errors"

	"github.com/spec-kit/coffee-passport/internal/domain"
)

// Sentinel errors returned by store implementations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness violation on create.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrVersionConflict indicates the record changed since it was read.
	ErrVersionConflict = errors.New("version conflict")
)

// CustomerStore is the persistence port the engine mutates passports through.
// Update must apply only when the stored version matches the version the
// record was read with, returning ErrVersionConflict otherwise.
type CustomerStore interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	GetByCode(ctx context.Context, code string) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	List(ctx context.Context) ([]domain.Customer, error)
	Delete(ctx context.Context, code string) error
}

// StaffDirectory answers allow-list membership. Membership is looked up per
// message, never cached, since the staff list changes out of band.
type StaffDirectory interface {
	IsAuthorized(ctx context.Context, phone string) (bool, error)
}

// AuditLog is the append-only sink for staff-gated command attempts.
type AuditLog interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
}
