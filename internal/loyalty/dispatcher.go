package loyalty

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/events"
)

// Dispatcher is the entry point for inbound messages. It normalizes the
// sender identity, parses the command, checks authorization, applies the
// command through the engine, records staff actions in the audit log, and
// composes the reply. Any downstream failure degrades to an error reply;
// the enclosing message loop never sees a panic.
type Dispatcher struct {
	engine     *Engine
	gate       *Gate
	audit      AuditLog
	dispatcher events.Dispatcher
	clock      Clock
	logger     *zap.Logger
}

// DispatcherDependencies bundles collaborators for the dispatcher.
type DispatcherDependencies struct {
	Engine *Engine
	Gate   *Gate
	Audit  AuditLog
	Events events.Dispatcher
	Clock  Clock
	Logger *zap.Logger
}

// NewDispatcher constructs the dispatcher.
func NewDispatcher(deps DispatcherDependencies) *Dispatcher {
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Dispatcher{
		engine:     deps.Engine,
		gate:       deps.Gate,
		audit:      deps.Audit,
		dispatcher: deps.Events,
		clock:      deps.Clock,
		logger:     deps.Logger,
	}
}

// Handle processes one inbound message and returns the reply text.
func (d *Dispatcher) Handle(ctx context.Context, msg domain.InboundMessage) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic handling message", zap.Any("panic", r), zap.String("message_id", msg.MessageID))
			reply = replyTryAgain
		}
	}()

	phone := NormalizePhone(msg.Sender)
	cmd := ParseCommand(msg.Text)

	d.logger.Debug("dispatching command",
		zap.String("phone", phone),
		zap.String("command", string(cmd.Kind)),
		zap.String("message_id", msg.MessageID))

	var out Outcome
	switch cmd.Kind {
	case CommandJoin:
		out = d.engine.Join(ctx, phone)
		if out.OK && !out.Existing {
			d.publish(ctx, events.EventCustomerJoined, out.Customer.CustomerCode, phone, events.CustomerJoinedPayload{
				PhoneNumber: phone,
				Stamps:      out.Customer.Stamps,
			})
		}
	case CommandStatus:
		out = d.engine.Status(ctx, phone)
	case CommandReward:
		out = d.engine.ClaimReward(ctx, phone)
		if out.OK {
			d.publish(ctx, events.EventRewardClaimed, out.Customer.CustomerCode, phone, events.RewardClaimedPayload{
				Rewards: out.Customer.Rewards,
			})
		}
	case CommandUpdateName:
		out = d.engine.UpdateName(ctx, phone, cmd.Name)
		if out.OK {
			d.publish(ctx, events.EventNameUpdated, out.Customer.CustomerCode, phone, nil)
		}
	case CommandHelp:
		out = Outcome{OK: true}
	case CommandStamp, CommandRedeem:
		out = d.handleStaffCommand(ctx, phone, cmd)
	default:
		if captured, ok := d.engine.CaptureName(ctx, phone, cmd.Raw); ok && captured.OK {
			return NameCapturedReply(captured.Customer)
		}
		out = Outcome{Failure: FailMalformedCommand}
	}

	if out.Err != nil {
		d.logger.Error("command failed against store",
			zap.String("command", string(cmd.Kind)),
			zap.String("phone", phone),
			zap.Error(out.Err))
	}

	return ComposeReply(cmd, out)
}

// handleStaffCommand gates STAMP/REDEEM, applies them, and records exactly
// one audit entry per attempt, denied ones included.
func (d *Dispatcher) handleStaffCommand(ctx context.Context, phone string, cmd Command) Outcome {
	allowed, err := d.gate.Allows(ctx, phone, cmd)
	if err != nil {
		out := storeFailure(err)
		d.recordAudit(ctx, phone, cmd, out)
		return out
	}
	if !allowed {
		out := Outcome{Failure: FailNotStaff}
		d.recordAudit(ctx, phone, cmd, out)
		return out
	}

	var out Outcome
	switch cmd.Kind {
	case CommandStamp:
		out = d.engine.Stamp(ctx, cmd.CustomerID)
		if out.OK {
			d.publish(ctx, events.EventStampAdded, out.Customer.CustomerCode, phone, events.StampAddedPayload{
				StaffPhone: phone,
				Stamps:     out.Customer.Stamps,
			})
		}
	case CommandRedeem:
		out = d.engine.Redeem(ctx, cmd.CustomerID)
		if out.OK {
			d.publish(ctx, events.EventRewardRedeemed, out.Customer.CustomerCode, phone, events.RewardRedeemedPayload{
				StaffPhone: phone,
				Rewards:    out.Customer.Rewards,
			})
		}
	}

	// The entry must land before the reply is considered final. The mutation
	// has already committed, so an append failure is logged loudly but the
	// reply still reports what actually happened.
	d.recordAudit(ctx, phone, cmd, out)
	return out
}

func (d *Dispatcher) recordAudit(ctx context.Context, phone string, cmd Command, out Outcome) {
	action := domain.AuditActionStamp
	if cmd.Kind == CommandRedeem {
		action = domain.AuditActionRedeem
	}

	entry := &domain.AuditEntry{
		ActorPhone:       phone,
		Action:           action,
		TargetCustomerID: cmd.CustomerID,
		CreatedAt:        d.clock.Now(),
	}
	switch {
	case out.OK:
		entry.Result = domain.AuditResultSuccess
	case out.Failure == FailStoreUnavailable:
		entry.Result = domain.AuditResultError
		entry.Reason = string(FailStoreUnavailable)
	default:
		entry.Result = domain.AuditResultDenied
		entry.Reason = string(out.Failure)
	}

	if err := d.audit.Append(ctx, entry); err != nil {
		d.logger.Error("audit append failed",
			zap.String("actor", phone),
			zap.String("action", string(action)),
			zap.String("target", cmd.CustomerID),
			zap.String("result", string(entry.Result)),
			zap.Error(err))
	}
}

func (d *Dispatcher) publish(ctx context.Context, eventType events.EventType, code, actor string, payload interface{}) {
	if d.dispatcher == nil {
		return
	}
	_ = d.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		CustomerCode: code,
		ActorPhone:   actor,
		Timestamp:    d.clock.Now(),
		Payload:      payload,
	})
}
