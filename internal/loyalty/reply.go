package loyalty

import (
	"fmt"
	"strings"

	"github.com/spec-kit/coffee-passport/internal/domain"
)

const (
	replyNoPassport = "You don't have a passport yet. Send 'JOIN' to get started!"
	replyTryAgain   = "Sorry, I encountered an error processing your request. Please try again."
	replyUnknown    = "I didn't understand that command. Send 'HELP' to see available commands.\n\n" +
		"Quick examples:\n• JOIN - Start your coffee passport\n• STATUS - Check your progress\n• HELP - See all commands"
	replyHelp = "🤖 Coffee Passport Commands:\n\n" +
		"📝 JOIN - Create your passport\n" +
		"📋 STATUS - Check your progress\n" +
		"🎁 REWARD - Claim your free coffee\n" +
		"✏️ UPDATE NAME [name] - Change your name\n" +
		"❓ HELP - Show this help\n\n" +
		"Staff Commands:\n" +
		"• STAMP [customer_id] - Add stamp\n" +
		"• REDEEM [customer_id] - Confirm redemption\n\n" +
		"Examples:\n• JOIN\n• STATUS\n• UPDATE NAME John"
)

const resetDateLayout = "02 Jan 2006"

// ComposeReply renders the outcome of a command into user-facing reply text.
// It is a pure function and total: every command kind and failure code maps
// to a non-empty string.
func ComposeReply(cmd Command, out Outcome) string {
	if out.Failure == FailStoreUnavailable {
		return replyTryAgain
	}

	switch cmd.Kind {
	case CommandJoin:
		return joinReply(out)
	case CommandStatus:
		return statusReply(out)
	case CommandReward:
		return rewardReply(out)
	case CommandUpdateName:
		return updateNameReply(out)
	case CommandHelp:
		return replyHelp
	case CommandStamp:
		return stampReply(cmd, out)
	case CommandRedeem:
		return redeemReply(cmd, out)
	default:
		return unknownReply(cmd)
	}
}

// NameCapturedReply confirms a passport after the JOIN name prompt.
func NameCapturedReply(c *domain.Customer) string {
	return fmt.Sprintf(
		"🎉 Thanks %s! Passport ready.\n\nStamps: %d/%d | Rewards: %d | ID: #%s\n\n"+
			"Rewards reset every 3 months.\nNext reset: %s\n\nSend 'STATUS' anytime to check progress!",
		c.Name, c.Stamps, domain.MaxStamps, c.Rewards, c.CustomerCode,
		c.ResetDate.Format(resetDateLayout),
	)
}

func joinReply(out Outcome) string {
	if !out.OK {
		return replyTryAgain
	}
	if out.Existing {
		c := out.Customer
		return fmt.Sprintf(
			"Welcome back! You already have a passport.\n\nStamps: %d/%d | Rewards: %d | ID: #%s\n\nSend 'STATUS' for full details.",
			c.Stamps, domain.MaxStamps, c.Rewards, c.CustomerCode,
		)
	}
	return "🎉 Welcome to Coffee Passport!\n\nWhat's your first name?"
}

func statusReply(out Outcome) string {
	if out.Failure == FailCustomerNotFound {
		return replyNoPassport
	}
	if !out.OK {
		return replyTryAgain
	}
	c := out.Customer
	return fmt.Sprintf(
		"☕ Passport for %s\n\nStamps: %d/%d\nRewards: %d\nID: #%s\n\nRewards reset on: %s",
		c.Name, c.Stamps, domain.MaxStamps, c.Rewards, c.CustomerCode,
		c.ResetDate.Format(resetDateLayout),
	)
}

func rewardReply(out Outcome) string {
	switch {
	case out.OK:
		c := out.Customer
		return fmt.Sprintf(
			"🎉 Congrats %s! Free Coffee unlocked.\n\nShow this message to the staff to redeem your reward.\n\nReward Code: #%s-R%d",
			c.Name, c.CustomerCode, c.Rewards,
		)
	case out.Failure == FailCustomerNotFound:
		return replyNoPassport
	case out.Failure == FailNotEnoughStamps:
		return fmt.Sprintf(
			"You need %d stamps to unlock a reward. Current progress: %d/%d\n\nKeep collecting stamps!",
			domain.MaxStamps, out.Customer.Stamps, domain.MaxStamps,
		)
	default:
		return replyTryAgain
	}
}

func updateNameReply(out Outcome) string {
	switch {
	case out.OK:
		return fmt.Sprintf("✅ Name updated. Welcome back, %s!", out.Customer.Name)
	case out.Failure == FailCustomerNotFound:
		return replyNoPassport
	default:
		return replyTryAgain
	}
}

func stampReply(cmd Command, out Outcome) string {
	switch {
	case out.OK:
		c := out.Customer
		return fmt.Sprintf("✅ Stamp added for %s. Progress: %d/%d.", customerLabel(c), c.Stamps, domain.MaxStamps)
	case out.Failure == FailNotStaff:
		return "You are not authorized to add stamps. Please contact management."
	case out.Failure == FailCustomerNotFound:
		return fmt.Sprintf("Customer #%s not found.", cmd.CustomerID)
	case out.Failure == FailDuplicateStamp:
		return fmt.Sprintf("Duplicate stamp blocked. Last stamp for #%s was less than 5 minutes ago.", cmd.CustomerID)
	case out.Failure == FailAlreadyMaxed:
		return fmt.Sprintf(
			"Passport #%s is already full at %d/%d. Ask the customer to send 'REWARD' to claim their free coffee.",
			cmd.CustomerID, domain.MaxStamps, domain.MaxStamps,
		)
	default:
		return replyTryAgain
	}
}

func redeemReply(cmd Command, out Outcome) string {
	switch {
	case out.OK:
		return fmt.Sprintf("✅ Reward redeemed for %s. Passport reset to 0/%d.", customerLabel(out.Customer), domain.MaxStamps)
	case out.Failure == FailNotStaff:
		return "You are not authorized to redeem rewards. Please contact management."
	case out.Failure == FailCustomerNotFound:
		return fmt.Sprintf("Customer #%s not found.", cmd.CustomerID)
	case out.Failure == FailNoRewardAvailable:
		return fmt.Sprintf("Customer #%s has no rewards to redeem.", cmd.CustomerID)
	default:
		return replyTryAgain
	}
}

// unknownReply renders format hints for staff verbs missing their target and
// the generic fallback for everything else.
func unknownReply(cmd Command) string {
	fields := strings.Fields(cmd.Raw)
	if len(fields) > 0 {
		switch strings.ToUpper(fields[0]) {
		case "STAMP":
			return "Please specify customer ID. Format: STAMP C1234"
		case "REDEEM":
			return "Please specify customer ID. Format: REDEEM C1234"
		case "UPDATE":
			return "Please specify your new name. Format: UPDATE NAME YourName"
		}
	}
	return replyUnknown
}

func customerLabel(c *domain.Customer) string {
	if c.Name != "" {
		return c.Name
	}
	return "#" + c.CustomerCode
}
