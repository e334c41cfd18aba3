package domain

import "time"

// StaffMember is an operator allowed to issue STAMP and REDEEM commands.
// Staff records are managed through the admin API, never via chat.
type StaffMember struct {
	ID           string
	PhoneNumber  string
	Name         string
	Authorized   bool
	AuthorizedAt time.Time
}
