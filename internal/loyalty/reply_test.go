package loyalty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/coffee-passport/internal/domain"
)

func testCustomer() *domain.Customer {
	return &domain.Customer{
		CustomerCode: "C1234",
		Name:         "Alice",
		Stamps:       1,
		Rewards:      0,
		ResetDate:    time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestComposeReplyIsTotal(t *testing.T) {
	kinds := []CommandKind{
		CommandJoin, CommandStatus, CommandReward, CommandUpdateName,
		CommandHelp, CommandStamp, CommandRedeem, CommandUnknown,
	}
	failures := []FailureCode{
		"", FailCustomerNotFound, FailNotStaff, FailDuplicateStamp,
		FailAlreadyMaxed, FailNoRewardAvailable, FailNotEnoughStamps,
		FailMalformedCommand, FailStoreUnavailable,
	}

	for _, kind := range kinds {
		for _, failure := range failures {
			out := Outcome{OK: failure == "", Failure: failure, Customer: testCustomer()}
			reply := ComposeReply(Command{Kind: kind, CustomerID: "C1234"}, out)
			assert.NotEmpty(t, reply, "kind=%s failure=%s", kind, failure)
		}
	}
}

func TestStatusReplyContents(t *testing.T) {
	reply := ComposeReply(Command{Kind: CommandStatus}, Outcome{OK: true, Customer: testCustomer()})
	assert.Contains(t, reply, "Alice")
	assert.Contains(t, reply, "Stamps: 1/10")
	assert.Contains(t, reply, "#C1234")
	assert.Contains(t, reply, "30 May 2024")
}

func TestStatusReplyWithoutPassport(t *testing.T) {
	reply := ComposeReply(Command{Kind: CommandStatus}, Outcome{Failure: FailCustomerNotFound})
	assert.Contains(t, reply, "Send 'JOIN' to get started")
}

func TestJoinReplies(t *testing.T) {
	fresh := ComposeReply(Command{Kind: CommandJoin}, Outcome{OK: true, Customer: testCustomer()})
	assert.Contains(t, fresh, "What's your first name?")

	existing := ComposeReply(Command{Kind: CommandJoin}, Outcome{OK: true, Existing: true, Customer: testCustomer()})
	assert.Contains(t, existing, "Welcome back")
	assert.Contains(t, existing, "#C1234")
}

func TestRewardReplies(t *testing.T) {
	c := testCustomer()
	c.Stamps = 10
	c.Rewards = 1
	unlocked := ComposeReply(Command{Kind: CommandReward}, Outcome{OK: true, Customer: c})
	assert.Contains(t, unlocked, "Reward Code: #C1234-R1")

	short := ComposeReply(Command{Kind: CommandReward}, Outcome{Failure: FailNotEnoughStamps, Customer: testCustomer()})
	assert.Contains(t, short, "You need 10 stamps")
	assert.Contains(t, short, "1/10")
}

func TestStampReplies(t *testing.T) {
	cmd := Command{Kind: CommandStamp, CustomerID: "C1234"}

	c := testCustomer()
	c.Stamps = 4
	ok := ComposeReply(cmd, Outcome{OK: true, Customer: c})
	assert.Contains(t, ok, "Stamp added for Alice")
	assert.Contains(t, ok, "4/10")

	denied := ComposeReply(cmd, Outcome{Failure: FailNotStaff})
	assert.Contains(t, denied, "not authorized to add stamps")

	duplicate := ComposeReply(cmd, Outcome{Failure: FailDuplicateStamp})
	assert.Contains(t, duplicate, "Duplicate stamp blocked")
	assert.Contains(t, duplicate, "#C1234")

	maxed := ComposeReply(cmd, Outcome{Failure: FailAlreadyMaxed})
	assert.Contains(t, maxed, "already full")

	missing := ComposeReply(cmd, Outcome{Failure: FailCustomerNotFound})
	assert.Contains(t, missing, "Customer #C1234 not found")
}

func TestRedeemReplies(t *testing.T) {
	cmd := Command{Kind: CommandRedeem, CustomerID: "C1234"}

	c := testCustomer()
	c.Stamps = 0
	ok := ComposeReply(cmd, Outcome{OK: true, Customer: c})
	assert.Contains(t, ok, "Reward redeemed for Alice")
	assert.Contains(t, ok, "0/10")

	none := ComposeReply(cmd, Outcome{Failure: FailNoRewardAvailable})
	assert.Contains(t, none, "no rewards to redeem")

	denied := ComposeReply(cmd, Outcome{Failure: FailNotStaff})
	assert.Contains(t, denied, "not authorized to redeem")
}

func TestUnknownReplyFormatHints(t *testing.T) {
	hint := ComposeReply(Command{Kind: CommandUnknown, Raw: "STAMP"}, Outcome{Failure: FailMalformedCommand})
	assert.Equal(t, "Please specify customer ID. Format: STAMP C1234", hint)

	hint = ComposeReply(Command{Kind: CommandUnknown, Raw: "redeem"}, Outcome{Failure: FailMalformedCommand})
	assert.Equal(t, "Please specify customer ID. Format: REDEEM C1234", hint)

	hint = ComposeReply(Command{Kind: CommandUnknown, Raw: "UPDATE NAME"}, Outcome{Failure: FailMalformedCommand})
	assert.Equal(t, "Please specify your new name. Format: UPDATE NAME YourName", hint)

	generic := ComposeReply(Command{Kind: CommandUnknown, Raw: "hello"}, Outcome{Failure: FailMalformedCommand})
	assert.Contains(t, generic, "Send 'HELP'")
}

func TestStoreUnavailableAlwaysDegrades(t *testing.T) {
	reply := ComposeReply(Command{Kind: CommandStatus}, Outcome{Failure: FailStoreUnavailable})
	assert.Equal(t, replyTryAgain, reply)
}

func TestStampReplyFallsBackToCodeWithoutName(t *testing.T) {
	c := testCustomer()
	c.Name = ""
	reply := ComposeReply(Command{Kind: CommandStamp, CustomerID: "C1234"}, Outcome{OK: true, Customer: c})
	assert.Contains(t, reply, "Stamp added for #C1234")
}
