package domain

import "time"

// MaxStamps is the number of stamps that fills a passport and unlocks a reward.
const MaxStamps = 10

// Customer is the aggregate for a loyalty passport. The stored record is the
// full state of the loyalty machine: stamps, unredeemed rewards, and the
// timestamp guarding the duplicate-stamp cooldown.
type Customer struct {
	ID             string
	CustomerCode   string
	PhoneNumber    string
	Name           string
	Stamps         int
	Rewards        int
	LastStampAt    *time.Time
	ResetDate      time.Time
	Active         bool
	Version        int64
	CreatedAt      time.Time
	LastActivityAt time.Time
}

// PassportFull reports whether the customer may claim a reward.
func (c *Customer) PassportFull() bool {
	return c.Stamps >= MaxStamps
}
