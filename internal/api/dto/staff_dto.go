package dto

import "time"

// StaffCreateRequest payload.
type StaffCreateRequest struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
}

// StaffUpdateRequest payload. Nil fields are left unchanged.
type StaffUpdateRequest struct {
	Name       *string `json:"name"`
	Authorized *bool   `json:"authorized"`
}

// StaffResponse is the admin view of an allow-list entry.
type StaffResponse struct {
	PhoneNumber  string    `json:"phone_number"`
	Name         string    `json:"name"`
	Authorized   bool      `json:"authorized"`
	AuthorizedAt time.Time `json:"authorized_at"`
}
