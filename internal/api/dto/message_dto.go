package dto

// InboundMessageRequest is the payload the WhatsApp bridge posts for each
// received message.
type InboundMessageRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
	MessageID   string `json:"message_id"`
	Timestamp   int64  `json:"timestamp"`
}

// MessageResponse carries the composed reply back to the bridge. A dropped
// redelivery returns an empty reply; the bridge sends nothing in that case.
type MessageResponse struct {
	Reply   string `json:"reply"`
	Success bool   `json:"success"`
}

// SendMessageRequest is the payload for the outbound send proxy.
type SendMessageRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}
