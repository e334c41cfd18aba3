package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/loyalty"
)

// In-memory repository implementations, used when no POSTGRES_DSN is
// configured and throughout the test suite. They honor the same contracts
// as the Postgres implementations, including version-guarded customer
// updates.

// MemoryCustomerRepository is a mutex-guarded in-memory CustomerRepository.
type MemoryCustomerRepository struct {
	mu      sync.Mutex
	byPhone map[string]*domain.Customer
	byCode  map[string]*domain.Customer
}

// NewMemoryCustomerRepository builds an empty store.
func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{
		byPhone: make(map[string]*domain.Customer),
		byCode:  make(map[string]*domain.Customer),
	}
}

func (r *MemoryCustomerRepository) Create(_ context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPhone[c.PhoneNumber]; ok {
		return loyalty.ErrAlreadyExists
	}
	if _, ok := r.byCode[c.CustomerCode]; ok {
		return loyalty.ErrAlreadyExists
	}
	c.ID = uuid.NewString()
	c.Version = 1
	stored := *c
	r.byPhone[c.PhoneNumber] = &stored
	r.byCode[c.CustomerCode] = &stored
	return nil
}

func (r *MemoryCustomerRepository) Update(_ context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byPhone[c.PhoneNumber]
	if !ok {
		return loyalty.ErrNotFound
	}
	if stored.Version != c.Version {
		return loyalty.ErrVersionConflict
	}
	c.Version++
	next := *c
	r.byPhone[c.PhoneNumber] = &next
	r.byCode[c.CustomerCode] = &next
	return nil
}

func (r *MemoryCustomerRepository) GetByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byPhone[phone]
	if !ok {
		return nil, loyalty.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *MemoryCustomerRepository) GetByCode(_ context.Context, code string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byCode[code]
	if !ok {
		return nil, loyalty.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *MemoryCustomerRepository) List(_ context.Context) ([]domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Customer, 0, len(r.byPhone))
	for _, c := range r.byPhone {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryCustomerRepository) Delete(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byCode[code]
	if !ok {
		return loyalty.ErrNotFound
	}
	delete(r.byCode, code)
	delete(r.byPhone, stored.PhoneNumber)
	return nil
}

func (r *MemoryCustomerRepository) Stats(_ context.Context, activeSince time.Time) (CustomerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stats CustomerStats
	for _, c := range r.byPhone {
		stats.TotalCustomers++
		stats.TotalStamps += int64(c.Stamps)
		if !c.LastActivityAt.Before(activeSince) {
			stats.ActiveCustomers++
		}
	}
	return stats, nil
}

// MemoryStaffRepository is a mutex-guarded in-memory StaffRepository.
type MemoryStaffRepository struct {
	mu      sync.Mutex
	byPhone map[string]*domain.StaffMember
}

// NewMemoryStaffRepository builds an empty allow-list.
func NewMemoryStaffRepository() *MemoryStaffRepository {
	return &MemoryStaffRepository{byPhone: make(map[string]*domain.StaffMember)}
}

func (r *MemoryStaffRepository) IsAuthorized(_ context.Context, phone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	staff, ok := r.byPhone[phone]
	return ok && staff.Authorized, nil
}

func (r *MemoryStaffRepository) Add(_ context.Context, staff *domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPhone[staff.PhoneNumber]; ok {
		return loyalty.ErrAlreadyExists
	}
	staff.ID = uuid.NewString()
	if staff.AuthorizedAt.IsZero() {
		staff.AuthorizedAt = time.Now().UTC()
	}
	stored := *staff
	r.byPhone[staff.PhoneNumber] = &stored
	return nil
}

func (r *MemoryStaffRepository) Update(_ context.Context, staff *domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byPhone[staff.PhoneNumber]
	if !ok {
		return loyalty.ErrNotFound
	}
	stored.Name = staff.Name
	stored.Authorized = staff.Authorized
	return nil
}

func (r *MemoryStaffRepository) GetByPhone(_ context.Context, phone string) (*domain.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byPhone[phone]
	if !ok {
		return nil, loyalty.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *MemoryStaffRepository) List(_ context.Context) ([]domain.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.StaffMember, 0, len(r.byPhone))
	for _, staff := range r.byPhone {
		result = append(result, *staff)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AuthorizedAt.After(result[j].AuthorizedAt)
	})
	return result, nil
}

func (r *MemoryStaffRepository) Remove(_ context.Context, phone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPhone[phone]; !ok {
		return loyalty.ErrNotFound
	}
	delete(r.byPhone, phone)
	return nil
}

// MemoryAuditRepository is a mutex-guarded in-memory AuditRepository.
type MemoryAuditRepository struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

// NewMemoryAuditRepository builds an empty log.
func NewMemoryAuditRepository() *MemoryAuditRepository {
	return &MemoryAuditRepository{}
}

func (r *MemoryAuditRepository) Append(_ context.Context, entry *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uuid.NewString()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *MemoryAuditRepository) List(_ context.Context, filter AuditFilter) ([]domain.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.AuditEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if filter.ActorPhone != nil && entry.ActorPhone != *filter.ActorPhone {
			continue
		}
		if filter.TargetCustomerID != nil && entry.TargetCustomerID != *filter.TargetCustomerID {
			continue
		}
		if filter.Action != nil && entry.Action != *filter.Action {
			continue
		}
		if filter.Result != nil && entry.Result != *filter.Result {
			continue
		}
		result = append(result, entry)
	}

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// MemoryAdminRepository is a mutex-guarded in-memory AdminRepository.
type MemoryAdminRepository struct {
	mu   sync.Mutex
	byID map[string]*domain.Admin
}

// NewMemoryAdminRepository builds an empty store.
func NewMemoryAdminRepository() *MemoryAdminRepository {
	return &MemoryAdminRepository{byID: make(map[string]*domain.Admin)}
}

func (r *MemoryAdminRepository) Create(_ context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.byID {
		if stored.Email == admin.Email {
			return loyalty.ErrAlreadyExists
		}
	}
	admin.ID = uuid.NewString()
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	stored := *admin
	r.byID[admin.ID] = &stored
	return nil
}

func (r *MemoryAdminRepository) Update(_ context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[admin.ID]; !ok {
		return loyalty.ErrNotFound
	}
	admin.UpdatedAt = time.Now().UTC()
	stored := *admin
	r.byID[admin.ID] = &stored
	return nil
}

func (r *MemoryAdminRepository) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, loyalty.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *MemoryAdminRepository) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.byID {
		if stored.Email == email {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, loyalty.ErrNotFound
}
