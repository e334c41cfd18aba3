package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-passport/internal/api/dto"
	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/service"
)

// MessagesHandler receives inbound chat messages from the bridge.
type MessagesHandler struct {
	messages *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messages *service.MessageService) *MessagesHandler {
	return &MessagesHandler{messages: messages}
}

// Receive handles POST /whatsapp/message. The bridge delivers every received
// message here and sends whatever reply comes back to the original sender.
func (h *MessagesHandler) Receive(c *fiber.Ctx) error {
	var req dto.InboundMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PhoneNumber == "" || req.Message == "" {
		return fiber.NewError(http.StatusBadRequest, "phone_number and message required")
	}

	reply, actionable := h.messages.Process(c.UserContext(), domain.InboundMessage{
		Sender:    req.PhoneNumber,
		Text:      req.Message,
		MessageID: req.MessageID,
		Timestamp: req.Timestamp,
	})
	if !actionable {
		return c.JSON(dto.MessageResponse{Success: true})
	}
	return c.JSON(dto.MessageResponse{Reply: reply, Success: true})
}
