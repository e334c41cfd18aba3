package loyalty

import "context"

// Gate classifies a sender as customer or staff for a given command.
type Gate struct {
	staff StaffDirectory
}

// NewGate builds the authorization gate over a staff directory.
func NewGate(staff StaffDirectory) *Gate {
	return &Gate{staff: staff}
}

// Allows reports whether the sender may run the command. STAMP and REDEEM
// require allow-list membership; every other command is open to any sender.
// The lookup runs on every message so staff changes take effect immediately.
func (g *Gate) Allows(ctx context.Context, phone string, cmd Command) (bool, error) {
	switch cmd.Kind {
	case CommandStamp, CommandRedeem:
		return g.staff.IsAuthorized(ctx, phone)
	default:
		return true, nil
	}
}
