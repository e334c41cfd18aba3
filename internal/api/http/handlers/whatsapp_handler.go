package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-passport/internal/api/dto"
	"github.com/spec-kit/coffee-passport/internal/loyalty"
	"github.com/spec-kit/coffee-passport/internal/transport"
)

// WhatsAppHandler proxies bridge session endpoints for the dashboard.
type WhatsAppHandler struct {
	bridge transport.Handle
}

// NewWhatsAppHandler constructs handler.
func NewWhatsAppHandler(bridge transport.Handle) *WhatsAppHandler {
	return &WhatsAppHandler{bridge: bridge}
}

// Status handles GET /whatsapp/status.
func (h *WhatsAppHandler) Status(c *fiber.Ctx) error {
	status, err := h.bridge.Status(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(fiber.Map{"data": status})
}

// QR handles GET /whatsapp/qr.
func (h *WhatsAppHandler) QR(c *fiber.Ctx) error {
	qr, err := h.bridge.QR(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(fiber.Map{"data": qr})
}

// Send handles POST /whatsapp/send.
func (h *WhatsAppHandler) Send(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PhoneNumber == "" || req.Message == "" {
		return fiber.NewError(http.StatusBadRequest, "phone_number and message required")
	}

	phone := loyalty.NormalizePhone(req.PhoneNumber)
	if err := h.bridge.SendText(c.UserContext(), phone, req.Message); err != nil {
		return fiber.NewError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "sent"}})
}
