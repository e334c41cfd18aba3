package loyalty

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/coffee-passport/internal/domain"
)

// memStore is a minimal version-guarded CustomerStore for engine tests.
type memStore struct {
	mu      sync.Mutex
	byPhone map[string]*domain.Customer
	byCode  map[string]*domain.Customer
}

func newMemStore() *memStore {
	return &memStore{
		byPhone: make(map[string]*domain.Customer),
		byCode:  make(map[string]*domain.Customer),
	}
}

func (s *memStore) Create(_ context.Context, c *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byPhone[c.PhoneNumber]; ok {
		return ErrAlreadyExists
	}
	if _, ok := s.byCode[c.CustomerCode]; ok {
		return ErrAlreadyExists
	}
	c.Version = 1
	stored := *c
	s.byPhone[c.PhoneNumber] = &stored
	s.byCode[c.CustomerCode] = &stored
	return nil
}

func (s *memStore) Update(_ context.Context, c *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byPhone[c.PhoneNumber]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != c.Version {
		return ErrVersionConflict
	}
	c.Version++
	next := *c
	s.byPhone[c.PhoneNumber] = &next
	s.byCode[c.CustomerCode] = &next
	return nil
}

func (s *memStore) GetByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byPhone[phone]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (s *memStore) GetByCode(_ context.Context, code string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (s *memStore) List(context.Context) ([]domain.Customer, error) { return nil, nil }

func (s *memStore) Delete(context.Context, string) error { return nil }

// failingStore errors on every operation.
type failingStore struct{ err error }

func (f failingStore) Create(context.Context, *domain.Customer) error { return f.err }
func (f failingStore) Update(context.Context, *domain.Customer) error { return f.err }
func (f failingStore) GetByPhone(context.Context, string) (*domain.Customer, error) {
	return nil, f.err
}
func (f failingStore) GetByCode(context.Context, string) (*domain.Customer, error) {
	return nil, f.err
}
func (f failingStore) List(context.Context) ([]domain.Customer, error) { return nil, f.err }
func (f failingStore) Delete(context.Context, string) error           { return f.err }

// fakeClock is a settable clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestEngine(store CustomerStore, clock Clock) *Engine {
	return NewEngine(store, EngineConfig{
		Cooldown:    5 * time.Minute,
		ResetPeriod: 90 * 24 * time.Hour,
		Clock:       clock,
	})
}

func TestJoinCreatesPassportWithWelcomeStamp(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(newMemStore(), clock)

	out := engine.Join(context.Background(), "+31612345678")
	require.True(t, out.OK)
	require.NotNil(t, out.Customer)
	assert.False(t, out.Existing)
	assert.Equal(t, 1, out.Customer.Stamps)
	assert.Equal(t, 0, out.Customer.Rewards)
	assert.NotEmpty(t, out.Customer.CustomerCode)
	assert.Equal(t, clock.Now().Add(90*24*time.Hour), out.Customer.ResetDate)
}

func TestJoinIsIdempotent(t *testing.T) {
	engine := newTestEngine(newMemStore(), newFakeClock())
	ctx := context.Background()

	first := engine.Join(ctx, "+31612345678")
	require.True(t, first.OK)

	second := engine.Join(ctx, "+31612345678")
	require.True(t, second.OK)
	assert.True(t, second.Existing)
	assert.Equal(t, first.Customer.CustomerCode, second.Customer.CustomerCode)
	assert.Equal(t, first.Customer.Stamps, second.Customer.Stamps)
}

func TestStatusUnknownPhone(t *testing.T) {
	engine := newTestEngine(newMemStore(), newFakeClock())

	out := engine.Status(context.Background(), "+31600000000")
	assert.False(t, out.OK)
	assert.Equal(t, FailCustomerNotFound, out.Failure)
}

func TestStampCooldownBlocksSecondStamp(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(newMemStore(), clock)
	ctx := context.Background()

	joined := engine.Join(ctx, "+31612345678")
	require.True(t, joined.OK)
	code := joined.Customer.CustomerCode

	clock.Advance(10 * time.Minute)
	first := engine.Stamp(ctx, code)
	require.True(t, first.OK)
	assert.Equal(t, 2, first.Customer.Stamps)

	clock.Advance(4 * time.Minute)
	blocked := engine.Stamp(ctx, code)
	assert.False(t, blocked.OK)
	assert.Equal(t, FailDuplicateStamp, blocked.Failure)

	clock.Advance(time.Minute)
	allowed := engine.Stamp(ctx, code)
	require.True(t, allowed.OK)
	assert.Equal(t, 3, allowed.Customer.Stamps)
}

func TestStampAtMaximumIsRejected(t *testing.T) {
	clock := newFakeClock()
	store := newMemStore()
	engine := newTestEngine(store, clock)
	ctx := context.Background()

	joined := engine.Join(ctx, "+31612345678")
	require.True(t, joined.OK)
	code := joined.Customer.CustomerCode

	for i := joined.Customer.Stamps; i < domain.MaxStamps; i++ {
		clock.Advance(6 * time.Minute)
		out := engine.Stamp(ctx, code)
		require.True(t, out.OK, "stamp %d", i+1)
	}

	clock.Advance(6 * time.Minute)
	out := engine.Stamp(ctx, code)
	assert.False(t, out.OK)
	assert.Equal(t, FailAlreadyMaxed, out.Failure)

	stored, err := store.GetByCode(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxStamps, stored.Stamps)
}

func TestClaimRewardRequiresFullPassport(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(newMemStore(), clock)
	ctx := context.Background()

	joined := engine.Join(ctx, "+31612345678")
	require.True(t, joined.OK)

	out := engine.ClaimReward(ctx, "+31612345678")
	assert.False(t, out.OK)
	assert.Equal(t, FailNotEnoughStamps, out.Failure)
	assert.Equal(t, 1, out.Customer.Stamps)
}

func TestRewardLifecycle(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(newMemStore(), clock)
	ctx := context.Background()

	joined := engine.Join(ctx, "+31612345678")
	require.True(t, joined.OK)
	code := joined.Customer.CustomerCode

	for i := joined.Customer.Stamps; i < domain.MaxStamps; i++ {
		clock.Advance(6 * time.Minute)
		require.True(t, engine.Stamp(ctx, code).OK)
	}

	claimed := engine.ClaimReward(ctx, "+31612345678")
	require.True(t, claimed.OK)
	assert.Equal(t, 1, claimed.Customer.Rewards)
	assert.Equal(t, domain.MaxStamps, claimed.Customer.Stamps)

	redeemed := engine.Redeem(ctx, code)
	require.True(t, redeemed.OK)
	assert.Equal(t, 0, redeemed.Customer.Rewards)
	assert.Equal(t, 0, redeemed.Customer.Stamps)

	again := engine.Redeem(ctx, code)
	assert.False(t, again.OK)
	assert.Equal(t, FailNoRewardAvailable, again.Failure)
}

func TestUpdateName(t *testing.T) {
	engine := newTestEngine(newMemStore(), newFakeClock())
	ctx := context.Background()

	require.True(t, engine.Join(ctx, "+31612345678").OK)

	out := engine.UpdateName(ctx, "+31612345678", "Alice")
	require.True(t, out.OK)
	assert.Equal(t, "Alice", out.Customer.Name)

	missing := engine.UpdateName(ctx, "+31600000000", "Bob")
	assert.Equal(t, FailCustomerNotFound, missing.Failure)
}

func TestCaptureNameOnlyForUnnamedPassports(t *testing.T) {
	engine := newTestEngine(newMemStore(), newFakeClock())
	ctx := context.Background()

	_, captured := engine.CaptureName(ctx, "+31600000000", "Alice")
	assert.False(t, captured, "no passport, message should stay unhandled")

	require.True(t, engine.Join(ctx, "+31612345678").OK)

	out, captured := engine.CaptureName(ctx, "+31612345678", "Alice")
	require.True(t, captured)
	require.True(t, out.OK)
	assert.Equal(t, "Alice", out.Customer.Name)

	_, captured = engine.CaptureName(ctx, "+31612345678", "Mallory")
	assert.False(t, captured, "named passport should not re-capture")
}

func TestConcurrentStampsApplyExactlyOnce(t *testing.T) {
	clock := newFakeClock()
	store := newMemStore()
	engine := newTestEngine(store, clock)
	ctx := context.Background()

	customer := &domain.Customer{
		CustomerCode: "C1234",
		PhoneNumber:  "+31612345678",
		Active:       true,
	}
	require.NoError(t, store.Create(ctx, customer))

	var wg sync.WaitGroup
	outcomes := make([]Outcome, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = engine.Stamp(ctx, "C1234")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, out := range outcomes {
		if out.OK {
			succeeded++
		} else {
			assert.Equal(t, FailDuplicateStamp, out.Failure)
		}
	}
	assert.Equal(t, 1, succeeded)

	stored, err := store.GetByCode(ctx, "C1234")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Stamps)
}

func TestStoreFailureSurfacesAsUnavailable(t *testing.T) {
	engine := newTestEngine(failingStore{err: errors.New("connection refused")}, newFakeClock())
	ctx := context.Background()

	for _, out := range []Outcome{
		engine.Join(ctx, "+31612345678"),
		engine.Status(ctx, "+31612345678"),
		engine.Stamp(ctx, "C1234"),
		engine.Redeem(ctx, "C1234"),
		engine.ClaimReward(ctx, "+31612345678"),
	} {
		assert.False(t, out.OK)
		assert.Equal(t, FailStoreUnavailable, out.Failure)
		assert.Error(t, out.Err)
	}
}
