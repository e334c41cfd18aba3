package loyalty

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/coffee-passport/internal/domain"
)

// FailureCode classifies why a command did not change state.
type FailureCode string

const (
	FailCustomerNotFound  FailureCode = "CUSTOMER_NOT_FOUND"
	FailNotStaff          FailureCode = "NOT_STAFF"
	FailDuplicateStamp    FailureCode = "DUPLICATE_STAMP"
	FailAlreadyMaxed      FailureCode = "ALREADY_MAXED"
	FailNoRewardAvailable FailureCode = "NO_REWARD_AVAILABLE"
	FailNotEnoughStamps   FailureCode = "NOT_ENOUGH_STAMPS"
	FailMalformedCommand  FailureCode = "MALFORMED_COMMAND"
	FailStoreUnavailable  FailureCode = "STORE_UNAVAILABLE"
)

// Outcome is the engine's verdict on one command.
type Outcome struct {
	OK      bool
	Failure FailureCode
	// Customer is the record snapshot after a successful mutation, or the
	// read snapshot for read-only and precondition failures when available.
	Customer *domain.Customer
	// Existing marks a JOIN from a phone number that already holds a passport.
	Existing bool
	// Err carries the underlying store error for STORE_UNAVAILABLE outcomes.
	Err error
}

// Clock abstracts time so cooldown decisions are deterministic in tests.
// Cooldown arithmetic always uses ingestion time from this clock, never the
// transport-reported message timestamp.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// EngineConfig tunes the state machine.
type EngineConfig struct {
	Cooldown    time.Duration
	ResetPeriod time.Duration
	Clock       Clock
}

// Engine is the loyalty state machine. The stored Customer record is the
// entire state; every mutation runs a read-check-write cycle retried on
// version conflict so concurrent commands for the same customer serialize.
type Engine struct {
	store       CustomerStore
	cooldown    time.Duration
	resetPeriod time.Duration
	clock       Clock
}

const mutationRetries = 3

// NewEngine builds an engine over the given store.
func NewEngine(store CustomerStore, cfg EngineConfig) *Engine {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 5 * time.Minute
	}
	if cfg.ResetPeriod <= 0 {
		cfg.ResetPeriod = 90 * 24 * time.Hour
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	return &Engine{
		store:       store,
		cooldown:    cfg.Cooldown,
		resetPeriod: cfg.ResetPeriod,
		clock:       cfg.Clock,
	}
}

// Join creates a passport for an unknown phone number with one welcome stamp.
// It is idempotent: a second JOIN returns the existing record untouched.
func (e *Engine) Join(ctx context.Context, phone string) Outcome {
	for attempt := 0; attempt < mutationRetries; attempt++ {
		existing, err := e.store.GetByPhone(ctx, phone)
		if err == nil {
			return Outcome{OK: true, Existing: true, Customer: existing}
		}
		if !errors.Is(err, ErrNotFound) {
			return storeFailure(err)
		}

		now := e.clock.Now()
		customer := &domain.Customer{
			CustomerCode:   newCustomerCode(),
			PhoneNumber:    phone,
			Stamps:         1,
			Rewards:        0,
			ResetDate:      now.Add(e.resetPeriod),
			Active:         true,
			CreatedAt:      now,
			LastActivityAt: now,
		}
		err = e.store.Create(ctx, customer)
		if err == nil {
			return Outcome{OK: true, Customer: customer}
		}
		// Lost a create race or collided on the short code; re-read and retry.
		if errors.Is(err, ErrAlreadyExists) {
			continue
		}
		return storeFailure(err)
	}
	return storeFailure(ErrAlreadyExists)
}

// Status returns the passport for a phone number without mutating it.
func (e *Engine) Status(ctx context.Context, phone string) Outcome {
	customer, err := e.store.GetByPhone(ctx, phone)
	if errors.Is(err, ErrNotFound) {
		return Outcome{Failure: FailCustomerNotFound}
	}
	if err != nil {
		return storeFailure(err)
	}
	return Outcome{OK: true, Customer: customer}
}

// ClaimReward marks a reward claimed once the passport is full. Stamps stay
// at the maximum until staff confirms redemption; the claim only marks
// eligibility, keeping the stateful reset in staff hands.
func (e *Engine) ClaimReward(ctx context.Context, phone string) Outcome {
	return e.mutate(ctx, e.byPhone(phone), func(c *domain.Customer) FailureCode {
		if !c.PassportFull() {
			return FailNotEnoughStamps
		}
		c.Rewards++
		return ""
	})
}

// UpdateName sets the customer's display name.
func (e *Engine) UpdateName(ctx context.Context, phone, name string) Outcome {
	return e.mutate(ctx, e.byPhone(phone), func(c *domain.Customer) FailureCode {
		c.Name = name
		return ""
	})
}

// CaptureName consumes a free-text message as the name response to the JOIN
// welcome prompt. It reports false when the sender has no passport or the
// passport is already named, in which case the message stays unhandled.
func (e *Engine) CaptureName(ctx context.Context, phone, name string) (Outcome, bool) {
	customer, err := e.store.GetByPhone(ctx, phone)
	if err != nil || customer.Name != "" {
		return Outcome{}, false
	}
	return e.UpdateName(ctx, phone, name), true
}

// Stamp adds one stamp to the passport identified by its short code. The
// duplicate-stamp cooldown is keyed on the customer, not the acting staff
// member, so switching staff does not bypass it.
func (e *Engine) Stamp(ctx context.Context, code string) Outcome {
	return e.mutate(ctx, e.byCode(code), func(c *domain.Customer) FailureCode {
		if c.Stamps >= domain.MaxStamps {
			return FailAlreadyMaxed
		}
		now := e.clock.Now()
		if c.LastStampAt != nil && now.Sub(*c.LastStampAt) < e.cooldown {
			return FailDuplicateStamp
		}
		c.Stamps++
		c.LastStampAt = &now
		return ""
	})
}

// Redeem consumes one claimed reward and resets the passport to zero stamps.
func (e *Engine) Redeem(ctx context.Context, code string) Outcome {
	return e.mutate(ctx, e.byCode(code), func(c *domain.Customer) FailureCode {
		if c.Rewards < 1 {
			return FailNoRewardAvailable
		}
		c.Rewards--
		c.Stamps = 0
		return ""
	})
}

// mutate runs one read-check-write cycle, retrying on version conflict so
// two concurrent mutations for the same customer never both pass their
// precondition against a stale read.
func (e *Engine) mutate(ctx context.Context, load func(context.Context) (*domain.Customer, error), apply func(*domain.Customer) FailureCode) Outcome {
	for attempt := 0; attempt < mutationRetries; attempt++ {
		customer, err := load(ctx)
		if errors.Is(err, ErrNotFound) {
			return Outcome{Failure: FailCustomerNotFound}
		}
		if err != nil {
			return storeFailure(err)
		}

		if fail := apply(customer); fail != "" {
			return Outcome{Failure: fail, Customer: customer}
		}

		customer.LastActivityAt = e.clock.Now()
		err = e.store.Update(ctx, customer)
		if err == nil {
			return Outcome{OK: true, Customer: customer}
		}
		if errors.Is(err, ErrVersionConflict) {
			continue
		}
		return storeFailure(err)
	}
	return storeFailure(ErrVersionConflict)
}

func (e *Engine) byPhone(phone string) func(context.Context) (*domain.Customer, error) {
	return func(ctx context.Context) (*domain.Customer, error) {
		return e.store.GetByPhone(ctx, phone)
	}
}

func (e *Engine) byCode(code string) func(context.Context) (*domain.Customer, error) {
	return func(ctx context.Context) (*domain.Customer, error) {
		return e.store.GetByCode(ctx, code)
	}
}

func storeFailure(err error) Outcome {
	return Outcome{Failure: FailStoreUnavailable, Err: err}
}

// newCustomerCode derives a short human-shareable passport code.
func newCustomerCode() string {
	u := uuid.New()
	return fmt.Sprintf("C%04d", binary.BigEndian.Uint32(u[:4])%10000)
}
