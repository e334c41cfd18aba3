package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/loyalty"
	"github.com/spec-kit/coffee-passport/internal/repository"
)

// AdminService backs the dashboard API: staff allow-list management,
// customer record administration, audit listing, and aggregate analytics.
// It is external glue around the loyalty core; chat commands never reach it.
type AdminService struct {
	customers    repository.CustomerRepository
	staff        repository.StaffRepository
	audit        repository.AuditRepository
	activeWindow time.Duration
}

// AdminDependencies bundles repositories for the admin service.
type AdminDependencies struct {
	CustomerRepo repository.CustomerRepository
	StaffRepo    repository.StaffRepository
	AuditRepo    repository.AuditRepository
	ActiveWindow time.Duration
}

// Stats are the dashboard aggregates.
type Stats struct {
	TotalCustomers  int64
	ActiveCustomers int64
	TotalStamps     int64
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	if deps.ActiveWindow <= 0 {
		deps.ActiveWindow = 30 * 24 * time.Hour
	}
	return &AdminService{
		customers:    deps.CustomerRepo,
		staff:        deps.StaffRepo,
		audit:        deps.AuditRepo,
		activeWindow: deps.ActiveWindow,
	}
}

// AddStaff puts a phone number on the allow-list. The number goes through
// the same normalization as inbound senders so the gate's lookups match.
func (s *AdminService) AddStaff(ctx context.Context, phone, name string) (*domain.StaffMember, error) {
	phone = loyalty.NormalizePhone(phone)
	name = strings.TrimSpace(name)
	if phone == "" || name == "" {
		return nil, errors.New("phone number and name required")
	}

	staff := &domain.StaffMember{
		PhoneNumber: phone,
		Name:        name,
		Authorized:  true,
	}
	if err := s.staff.Add(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// UpdateStaff renames or toggles authorization for a staff member.
func (s *AdminService) UpdateStaff(ctx context.Context, phone string, name *string, authorized *bool) (*domain.StaffMember, error) {
	phone = loyalty.NormalizePhone(phone)
	staff, err := s.staff.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if name != nil && strings.TrimSpace(*name) != "" {
		staff.Name = strings.TrimSpace(*name)
	}
	if authorized != nil {
		staff.Authorized = *authorized
	}
	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// ListStaff returns the full allow-list.
func (s *AdminService) ListStaff(ctx context.Context) ([]domain.StaffMember, error) {
	return s.staff.List(ctx)
}

// RemoveStaff drops a phone number from the allow-list.
func (s *AdminService) RemoveStaff(ctx context.Context, phone string) error {
	return s.staff.Remove(ctx, loyalty.NormalizePhone(phone))
}

// ListCustomers returns every passport.
func (s *AdminService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

// GetCustomer fetches one passport by its short code.
func (s *AdminService) GetCustomer(ctx context.Context, code string) (*domain.Customer, error) {
	return s.customers.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

// UpdateCustomerName is the administrative rename path.
func (s *AdminService) UpdateCustomerName(ctx context.Context, code, name string) (*domain.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name required")
	}

	customer, err := s.customers.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	customer.Name = name
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer is the explicit administrative delete; the messaging core
// never destroys records.
func (s *AdminService) DeleteCustomer(ctx context.Context, code string) error {
	return s.customers.Delete(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

// GetStats computes dashboard aggregates.
func (s *AdminService) GetStats(ctx context.Context, now time.Time) (Stats, error) {
	stats, err := s.customers.Stats(ctx, now.Add(-s.activeWindow))
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalCustomers:  stats.TotalCustomers,
		ActiveCustomers: stats.ActiveCustomers,
		TotalStamps:     stats.TotalStamps,
	}, nil
}

// ListAudit returns audit entries matching the filter, newest first.
func (s *AdminService) ListAudit(ctx context.Context, filter repository.AuditFilter) ([]domain.AuditEntry, error) {
	return s.audit.List(ctx, filter)
}
