package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/loyalty"
	"github.com/spec-kit/coffee-passport/internal/observability"
)

const dedupKeyPrefix = "wa:msg:"

// MessageService fronts the loyalty dispatcher for the webhook: it drops
// redelivered messages by message_id before any command runs, so bridge
// reconnect replays cannot double-apply a stamp.
type MessageService struct {
	dispatcher *loyalty.Dispatcher
	redis      *redis.Client
	dedupTTL   time.Duration
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// MessageDependencies bundles collaborators for the message service.
type MessageDependencies struct {
	Dispatcher *loyalty.Dispatcher
	Redis      *redis.Client
	DedupTTL   time.Duration
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewMessageService builds the service.
func NewMessageService(deps MessageDependencies) *MessageService {
	if deps.DedupTTL <= 0 {
		deps.DedupTTL = 24 * time.Hour
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &MessageService{
		dispatcher: deps.Dispatcher,
		redis:      deps.Redis,
		dedupTTL:   deps.DedupTTL,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// Process handles one inbound message. The returned reply is empty only for
// non-actionable events, currently redeliveries of an already processed
// message_id.
func (s *MessageService) Process(ctx context.Context, msg domain.InboundMessage) (string, bool) {
	if s.isDuplicate(ctx, msg.MessageID) {
		s.logger.Info("dropping redelivered message", zap.String("message_id", msg.MessageID))
		return "", false
	}

	cmd := loyalty.ParseCommand(msg.Text)
	s.metrics.RecordCommand(string(cmd.Kind))

	return s.dispatcher.Handle(ctx, msg), true
}

// isDuplicate claims the message id in Redis. Dedup is best effort: with
// Redis unreachable every message is treated as fresh, which the engine's
// cooldown and idempotent JOIN still keep safe.
func (s *MessageService) isDuplicate(ctx context.Context, messageID string) bool {
	if s.redis == nil || messageID == "" {
		return false
	}
	claimed, err := s.redis.SetNX(ctx, dedupKeyPrefix+messageID, 1, s.dedupTTL).Result()
	if err != nil {
		s.logger.Warn("message dedup unavailable", zap.Error(err))
		return false
	}
	return !claimed
}
