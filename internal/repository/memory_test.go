package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/loyalty"
)

func TestMemoryCustomerRepositoryVersionGuard(t *testing.T) {
	repo := NewMemoryCustomerRepository()
	ctx := context.Background()

	customer := &domain.Customer{
		CustomerCode: "C1234",
		PhoneNumber:  "31612345678",
		Stamps:       1,
	}
	require.NoError(t, repo.Create(ctx, customer))
	assert.Equal(t, int64(1), customer.Version)

	stale, err := repo.GetByPhone(ctx, "31612345678")
	require.NoError(t, err)

	customer.Stamps = 2
	require.NoError(t, repo.Update(ctx, customer))
	assert.Equal(t, int64(2), customer.Version)

	stale.Stamps = 5
	err = repo.Update(ctx, stale)
	assert.ErrorIs(t, err, loyalty.ErrVersionConflict)

	current, err := repo.GetByCode(ctx, "C1234")
	require.NoError(t, err)
	assert.Equal(t, 2, current.Stamps)
}

func TestMemoryCustomerRepositoryUniqueness(t *testing.T) {
	repo := NewMemoryCustomerRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Customer{CustomerCode: "C1111", PhoneNumber: "31611111111"}))

	err := repo.Create(ctx, &domain.Customer{CustomerCode: "C2222", PhoneNumber: "31611111111"})
	assert.ErrorIs(t, err, loyalty.ErrAlreadyExists)

	err = repo.Create(ctx, &domain.Customer{CustomerCode: "C1111", PhoneNumber: "31622222222"})
	assert.ErrorIs(t, err, loyalty.ErrAlreadyExists)
}

func TestMemoryCustomerRepositoryStats(t *testing.T) {
	repo := NewMemoryCustomerRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, &domain.Customer{
		CustomerCode: "C1111", PhoneNumber: "31611111111", Stamps: 3,
		LastActivityAt: now,
	}))
	require.NoError(t, repo.Create(ctx, &domain.Customer{
		CustomerCode: "C2222", PhoneNumber: "31622222222", Stamps: 7,
		LastActivityAt: now.Add(-60 * 24 * time.Hour),
	}))

	stats, err := repo.Stats(ctx, now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalCustomers)
	assert.Equal(t, int64(1), stats.ActiveCustomers)
	assert.Equal(t, int64(10), stats.TotalStamps)
}

func TestMemoryStaffRepositoryAuthorization(t *testing.T) {
	repo := NewMemoryStaffRepository()
	ctx := context.Background()

	ok, err := repo.IsAuthorized(ctx, "31688888888")
	require.NoError(t, err)
	assert.False(t, ok)

	staff := &domain.StaffMember{PhoneNumber: "31688888888", Name: "Bea", Authorized: true}
	require.NoError(t, repo.Add(ctx, staff))

	ok, err = repo.IsAuthorized(ctx, "31688888888")
	require.NoError(t, err)
	assert.True(t, ok)

	staff.Authorized = false
	require.NoError(t, repo.Update(ctx, staff))

	ok, err = repo.IsAuthorized(ctx, "31688888888")
	require.NoError(t, err)
	assert.False(t, ok, "deauthorized staff must lose access immediately")

	require.NoError(t, repo.Remove(ctx, "31688888888"))
	assert.ErrorIs(t, repo.Remove(ctx, "31688888888"), loyalty.ErrNotFound)
}

func TestMemoryAuditRepositoryFilters(t *testing.T) {
	repo := NewMemoryAuditRepository()
	ctx := context.Background()

	entries := []domain.AuditEntry{
		{ActorPhone: "31688888888", Action: domain.AuditActionStamp, TargetCustomerID: "C1111", Result: domain.AuditResultSuccess},
		{ActorPhone: "31688888888", Action: domain.AuditActionRedeem, TargetCustomerID: "C1111", Result: domain.AuditResultDenied, Reason: "NO_REWARD_AVAILABLE"},
		{ActorPhone: "31699999999", Action: domain.AuditActionStamp, TargetCustomerID: "C2222", Result: domain.AuditResultDenied, Reason: "NOT_STAFF"},
	}
	for i := range entries {
		require.NoError(t, repo.Append(ctx, &entries[i]))
		assert.NotEmpty(t, entries[i].ID)
	}

	all, err := repo.List(ctx, AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "31699999999", all[0].ActorPhone, "newest first")

	actor := "31688888888"
	byActor, err := repo.List(ctx, AuditFilter{ActorPhone: &actor})
	require.NoError(t, err)
	assert.Len(t, byActor, 2)

	denied := domain.AuditResultDenied
	byResult, err := repo.List(ctx, AuditFilter{Result: &denied})
	require.NoError(t, err)
	assert.Len(t, byResult, 2)

	action := domain.AuditActionRedeem
	byAction, err := repo.List(ctx, AuditFilter{Action: &action})
	require.NoError(t, err)
	require.Len(t, byAction, 1)
	assert.Equal(t, "C1111", byAction[0].TargetCustomerID)

	limited, err := repo.List(ctx, AuditFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
}
