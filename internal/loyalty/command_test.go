package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Command
	}{
		{"join", "JOIN", Command{Kind: CommandJoin, Raw: "JOIN"}},
		{"join lowercase", "join", Command{Kind: CommandJoin, Raw: "join"}},
		{"join padded", "  join  ", Command{Kind: CommandJoin, Raw: "join"}},
		{"join with trailing token", "JOIN now", Command{Kind: CommandUnknown, Raw: "JOIN now"}},
		{"status", "status", Command{Kind: CommandStatus, Raw: "status"}},
		{"reward", "Reward", Command{Kind: CommandReward, Raw: "Reward"}},
		{"help", "HELP", Command{Kind: CommandHelp, Raw: "HELP"}},
		{"commands alias", "commands", Command{Kind: CommandHelp, Raw: "commands"}},
		{"update name single", "UPDATE NAME Alice", Command{Kind: CommandUpdateName, Name: "Alice", Raw: "UPDATE NAME Alice"}},
		{"update name multiword", "update name Mary Jane", Command{Kind: CommandUpdateName, Name: "Mary Jane", Raw: "update name Mary Jane"}},
		{"update without name", "UPDATE NAME", Command{Kind: CommandUnknown, Raw: "UPDATE NAME"}},
		{"stamp", "STAMP C1234", Command{Kind: CommandStamp, CustomerID: "C1234", Raw: "STAMP C1234"}},
		{"stamp lowercase id", "stamp c1234", Command{Kind: CommandStamp, CustomerID: "C1234", Raw: "stamp c1234"}},
		{"stamp without id", "STAMP", Command{Kind: CommandUnknown, Raw: "STAMP"}},
		{"stamp extra tokens", "STAMP C1234 C5678", Command{Kind: CommandUnknown, Raw: "STAMP C1234 C5678"}},
		{"redeem", "REDEEM C0007", Command{Kind: CommandRedeem, CustomerID: "C0007", Raw: "REDEEM C0007"}},
		{"redeem without id", "redeem", Command{Kind: CommandUnknown, Raw: "redeem"}},
		{"free text", "hi there", Command{Kind: CommandUnknown, Raw: "hi there"}},
		{"empty", "   ", Command{Kind: CommandUnknown, Raw: ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseCommand(tc.text))
		})
	}
}
