package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/coffee-passport/internal/config"
)

func TestBridgeSendText(t *testing.T) {
	var got sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	bridge := NewWhatsAppBridge(config.WhatsAppConfig{BridgeURL: server.URL, TimeoutSeconds: 2})
	err := bridge.SendText(context.Background(), "31612345678", "hello")
	require.NoError(t, err)
	assert.Equal(t, "31612345678", got.PhoneNumber)
	assert.Equal(t, "hello", got.Message)
}

func TestBridgeSendTextFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	bridge := NewWhatsAppBridge(config.WhatsAppConfig{BridgeURL: server.URL, TimeoutSeconds: 2})
	err := bridge.SendText(context.Background(), "31612345678", "hello")
	assert.Error(t, err)
}

func TestBridgeStatusAndQR(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status":
			_ = json.NewEncoder(w).Encode(BridgeStatus{Connected: true, State: "open"})
		case "/qr":
			_ = json.NewEncoder(w).Encode(QRCode{Code: "pair-me"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	bridge := NewWhatsAppBridge(config.WhatsAppConfig{BridgeURL: server.URL, TimeoutSeconds: 2})

	status, err := bridge.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "open", status.State)

	qr, err := bridge.QR(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pair-me", qr.Code)
}
