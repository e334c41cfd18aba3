package dto

import "time"

// CustomerResponse is the admin view of a passport.
type CustomerResponse struct {
	CustomerCode   string     `json:"customer_code"`
	PhoneNumber    string     `json:"phone_number"`
	Name           string     `json:"name"`
	Stamps         int        `json:"stamps"`
	Rewards        int        `json:"rewards"`
	LastStampAt    *time.Time `json:"last_stamp_at"`
	ResetDate      time.Time  `json:"reset_date"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
	LastActivityAt time.Time  `json:"last_activity_at"`
}

// CustomerUpdateRequest payload for the administrative rename path.
type CustomerUpdateRequest struct {
	Name string `json:"name"`
}
