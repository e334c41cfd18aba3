package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/spec-kit/coffee-passport/internal/config"
)

// WhatsAppBridge is the HTTP client for the external bridge process.
type WhatsAppBridge struct {
	baseURL string
	client  *http.Client
}

// NewWhatsAppBridge builds a bridge client from config.
func NewWhatsAppBridge(cfg config.WhatsAppConfig) *WhatsAppBridge {
	return &WhatsAppBridge{
		baseURL: strings.TrimRight(cfg.BridgeURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout()},
	}
}

type sendRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}

// SendText delivers an outbound message through the bridge.
func (b *WhatsAppBridge) SendText(ctx context.Context, phoneNumber, message string) error {
	body, err := json.Marshal(sendRequest{PhoneNumber: phoneNumber, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("bridge send failed: status %d", resp.StatusCode)
	}
	return nil
}

// Status returns the bridge connection state.
func (b *WhatsAppBridge) Status(ctx context.Context) (BridgeStatus, error) {
	var status BridgeStatus
	if err := b.getJSON(ctx, "/status", &status); err != nil {
		return BridgeStatus{}, err
	}
	return status, nil
}

// QR returns the current pairing code.
func (b *WhatsAppBridge) QR(ctx context.Context) (QRCode, error) {
	var qr QRCode
	if err := b.getJSON(ctx, "/qr", &qr); err != nil {
		return QRCode{}, err
	}
	return qr, nil
}

func (b *WhatsAppBridge) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("bridge request %s failed: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Noop is a Handle that drops everything, for tests and offline runs.
type Noop struct{}

// SendText drops the message.
func (Noop) SendText(context.Context, string, string) error { return nil }

// Status reports a disconnected bridge.
func (Noop) Status(context.Context) (BridgeStatus, error) {
	return BridgeStatus{Connected: false, State: "offline"}, nil
}

// QR reports no pending code.
func (Noop) QR(context.Context) (QRCode, error) { return QRCode{}, nil }

var _ Handle = (*WhatsAppBridge)(nil)
var _ Handle = Noop{}
