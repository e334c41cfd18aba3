package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/loyalty"
	"github.com/spec-kit/coffee-passport/internal/observability"
	"github.com/spec-kit/coffee-passport/internal/repository"
)

func newTestMessageService() (*MessageService, *repository.MemoryCustomerRepository) {
	customers := repository.NewMemoryCustomerRepository()
	dispatcher := loyalty.NewDispatcher(loyalty.DispatcherDependencies{
		Engine: loyalty.NewEngine(customers, loyalty.EngineConfig{}),
		Gate:   loyalty.NewGate(repository.NewMemoryStaffRepository()),
		Audit:  repository.NewMemoryAuditRepository(),
	})
	svc := NewMessageService(MessageDependencies{
		Dispatcher: dispatcher,
		Metrics:    observability.NewMetrics(),
	})
	return svc, customers
}

func TestProcessJoinMessage(t *testing.T) {
	svc, customers := newTestMessageService()

	reply, actionable := svc.Process(context.Background(), domain.InboundMessage{
		Sender:    "31612345678@s.whatsapp.net",
		Text:      "JOIN",
		MessageID: "msg-1",
	})
	assert.True(t, actionable)
	assert.Contains(t, reply, "Welcome to Coffee Passport")

	customer, err := customers.GetByPhone(context.Background(), "31612345678")
	require.NoError(t, err)
	assert.Equal(t, 1, customer.Stamps)
}

func TestProcessWithoutRedisSkipsDedup(t *testing.T) {
	svc, _ := newTestMessageService()
	ctx := context.Background()

	msg := domain.InboundMessage{Sender: "31612345678", Text: "STATUS", MessageID: "msg-1"}

	_, actionable := svc.Process(ctx, msg)
	assert.True(t, actionable)

	// Same message id again: without Redis every delivery is treated as fresh.
	_, actionable = svc.Process(ctx, msg)
	assert.True(t, actionable)
}
