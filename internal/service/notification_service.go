package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/coffee-passport/internal/config"
	"github.com/spec-kit/coffee-passport/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to loyalty events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCustomerJoined, n.handleCustomerJoined)
	n.dispatcher.Subscribe(events.EventStampAdded, n.handleStampAdded)
	n.dispatcher.Subscribe(events.EventRewardClaimed, n.handleRewardClaimed)
	n.dispatcher.Subscribe(events.EventRewardRedeemed, n.handleRewardRedeemed)
	n.dispatcher.Subscribe(events.EventNameUpdated, n.handleNameUpdated)
}

func (n *NotificationService) handleCustomerJoined(ctx context.Context, event events.Event) error {
	n.logger.Info("CustomerJoined", zap.String("customer_code", event.CustomerCode), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStampAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("StampAdded", zap.String("customer_code", event.CustomerCode), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRewardClaimed(ctx context.Context, event events.Event) error {
	n.logger.Info("RewardClaimed", zap.String("customer_code", event.CustomerCode), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRewardRedeemed(ctx context.Context, event events.Event) error {
	n.logger.Info("RewardRedeemed", zap.String("customer_code", event.CustomerCode), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleNameUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("CustomerNameUpdated", zap.String("customer_code", event.CustomerCode), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("customer_code", event.CustomerCode),
		zap.String("event_type", string(event.Type)))
}
