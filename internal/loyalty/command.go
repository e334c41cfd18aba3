package loyalty

import "strings"

// CommandKind enumerates the closed set of recognized chat commands.
type CommandKind string

const (
	CommandJoin       CommandKind = "JOIN"
	CommandStatus     CommandKind = "STATUS"
	CommandReward     CommandKind = "REWARD"
	CommandUpdateName CommandKind = "UPDATE_NAME"
	CommandHelp       CommandKind = "HELP"
	CommandStamp      CommandKind = "STAMP"
	CommandRedeem     CommandKind = "REDEEM"
	CommandUnknown    CommandKind = "UNKNOWN"
)

// Command is the parsed form of one inbound message.
type Command struct {
	Kind CommandKind
	// Name carries the remainder of an UPDATE NAME message.
	Name string
	// CustomerID carries the target passport code of STAMP/REDEEM.
	CustomerID string
	// Raw preserves the original text for UNKNOWN handling.
	Raw string
}

// ParseCommand tokenizes raw message text into a Command. Matching is
// case-insensitive on the verb and tolerant of surrounding whitespace.
// STAMP and REDEEM require exactly one further token; anything else,
// including a missing target, parses as UNKNOWN and the composer renders
// the format hint. The parser performs no authorization or state lookup.
func ParseCommand(text string) Command {
	raw := strings.TrimSpace(text)
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Command{Kind: CommandUnknown, Raw: raw}
	}

	verb := strings.ToUpper(fields[0])
	switch verb {
	case "JOIN":
		if len(fields) == 1 {
			return Command{Kind: CommandJoin, Raw: raw}
		}
	case "STATUS":
		if len(fields) == 1 {
			return Command{Kind: CommandStatus, Raw: raw}
		}
	case "REWARD":
		if len(fields) == 1 {
			return Command{Kind: CommandReward, Raw: raw}
		}
	case "HELP", "COMMANDS":
		if len(fields) == 1 {
			return Command{Kind: CommandHelp, Raw: raw}
		}
	case "UPDATE":
		if len(fields) >= 3 && strings.EqualFold(fields[1], "NAME") {
			return Command{
				Kind: CommandUpdateName,
				Name: strings.Join(fields[2:], " "),
				Raw:  raw,
			}
		}
	case "STAMP":
		if len(fields) == 2 {
			return Command{Kind: CommandStamp, CustomerID: strings.ToUpper(fields[1]), Raw: raw}
		}
	case "REDEEM":
		if len(fields) == 2 {
			return Command{Kind: CommandRedeem, CustomerID: strings.ToUpper(fields[1]), Raw: raw}
		}
	}

	return Command{Kind: CommandUnknown, Raw: raw}
}
