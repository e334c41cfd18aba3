package dto

import "time"

// StatsResponse carries dashboard aggregates.
type StatsResponse struct {
	TotalCustomers  int64 `json:"total_customers"`
	ActiveCustomers int64 `json:"active_customers"`
	TotalStamps     int64 `json:"total_stamps"`
}

// AuditEntryResponse is one audit log row.
type AuditEntryResponse struct {
	ID               string    `json:"id"`
	ActorPhone       string    `json:"actor_phone"`
	Action           string    `json:"action"`
	TargetCustomerID string    `json:"target_customer_id"`
	Result           string    `json:"result"`
	Reason           string    `json:"reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
