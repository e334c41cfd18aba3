package transport

import "context"

// BridgeStatus reports the WhatsApp bridge connection state.
type BridgeStatus struct {
	Connected bool   `json:"connected"`
	State     string `json:"state"`
}

// QRCode carries the current pairing code, when one is pending.
type QRCode struct {
	Code string `json:"qr"`
}

// Handle is the injected, reconnectable channel abstraction. The bridge
// process owns the WhatsApp session (QR pairing, reconnects); the core only
// talks to it through this interface, so the core runs and tests without a
// live channel.
type Handle interface {
	SendText(ctx context.Context, phoneNumber, message string) error
	Status(ctx context.Context) (BridgeStatus, error)
	QR(ctx context.Context) (QRCode, error)
}
