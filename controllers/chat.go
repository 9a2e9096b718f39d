package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/utils"
)

type SendMessageRequest struct {
	AppointmentID utils.FlexID `json:"appointmentId"`
	Sender        utils.FlexID `json:"sender"`
	Receiver      utils.FlexID `json:"receiver"`
	Message       string       `json:"message"`
}

func (h *Handler) AppointmentMessages(c *fiber.Ctx) error {
	id, err := storeID(c, "appointmentId")
	if err != nil {
		return utils.Fail(c, err)
	}
	messages, err := h.Messages.ByAppointment(c.UserContext(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "messages": messages})
}

// Conversation returns the messages two users exchanged, across appointments.
func (h *Handler) Conversation(c *fiber.Ctx) error {
	user1, err := storeID(c, "user1")
	if err != nil {
		return utils.Fail(c, err)
	}
	user2, err := storeID(c, "user2")
	if err != nil {
		return utils.Fail(c, err)
	}
	messages, err := h.Messages.Between(c.UserContext(), user1, user2)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "messages": messages})
}

func (h *Handler) ChatClients(c *fiber.Ctx) error {
	id, err := storeID(c, "providerId")
	if err != nil {
		return utils.Fail(c, err)
	}
	clients, err := h.Messages.ChatClients(c.UserContext(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "clients": clients})
}

// SendMessage stores a chat line and replies with it, sender and receiver resolved.
func (h *Handler) SendMessage(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse request body"))
	}
	if req.AppointmentID == 0 || req.Sender == 0 || req.Receiver == 0 || req.Message == "" {
		return utils.Fail(c, utils.Validation("All fields are required."))
	}

	view, err := h.Messages.Create(c.UserContext(), &models.Message{
		AppointmentID: req.AppointmentID.Uint(),
		SenderID:      req.Sender.Uint(),
		ReceiverID:    req.Receiver.Uint(),
		Content:       req.Message,
		Timestamp:     h.Now(),
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(view)
}
