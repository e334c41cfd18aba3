package domain

import "time"

// Admin is a dashboard operator account. Admins authenticate with email and
// password and manage staff, customers, and analytics over HTTP; they are a
// separate identity class from chat-facing StaffMembers.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
