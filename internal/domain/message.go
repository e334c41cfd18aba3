package domain

// InboundMessage is one message delivered by the WhatsApp bridge.
// Timestamp is the transport-reported epoch seconds; it is kept for audit
// metadata only and never used for cooldown arithmetic.
type InboundMessage struct {
	Sender    string
	Text      string
	MessageID string
	Timestamp int64
}
