package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCustomerJoined EventType = "customer_joined"
	EventNameUpdated    EventType = "customer_name_updated"
	EventStampAdded     EventType = "stamp_added"
	EventRewardClaimed  EventType = "reward_claimed"
	EventRewardRedeemed EventType = "reward_redeemed"
)

// Event represents a domain event emitted after a successful command.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	CustomerCode string      `json:"customer_code"`
	ActorPhone   string      `json:"actor_phone"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// CustomerJoinedPayload payload.
type CustomerJoinedPayload struct {
	PhoneNumber string `json:"phone_number"`
	Stamps      int    `json:"stamps"`
}

// StampAddedPayload payload.
type StampAddedPayload struct {
	StaffPhone string `json:"staff_phone"`
	Stamps     int    `json:"stamps"`
}

// RewardClaimedPayload payload.
type RewardClaimedPayload struct {
	Rewards int `json:"rewards"`
}

// RewardRedeemedPayload payload.
type RewardRedeemedPayload struct {
	StaffPhone string `json:"staff_phone"`
	Rewards    int    `json:"rewards"`
}
