package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/logger"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/notify"
	"github.com/meinhoongagan/servicehub/repository"
	"github.com/meinhoongagan/servicehub/utils"
)

type TicketRequest struct {
	Client      utils.FlexID `json:"client" form:"client"`
	Appointment utils.FlexID `json:"appointment" form:"appointment"`
	Message     string       `json:"message" form:"message"`
}

func (h *Handler) AddTicket(c *fiber.Ctx) error {
	var req TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse request body"))
	}
	if req.Client == 0 || req.Appointment == 0 {
		return utils.Fail(c, utils.Validation("Client and Appointment are required"))
	}

	ticket := &models.Ticket{
		ClientID:      req.Client.Uint(),
		AppointmentID: req.Appointment.Uint(),
		Message:       req.Message,
		Status:        models.TicketActive,
	}
	if err := h.Tickets.Create(c.UserContext(), ticket); err != nil {
		return utils.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": ticket})
}

func (h *Handler) setTicketStatus(c *fiber.Ctx, valid func(string) bool) (*models.Ticket, error) {
	id, err := storeID(c, "id")
	if err != nil {
		return nil, err
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil || !valid(req.Status) {
		return nil, utils.Validation("Invalid status value")
	}

	ticket, err := h.Tickets.SetStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return nil, notFound(err, "Ticket not found")
	}
	return ticket, nil
}

func (h *Handler) UpdateTicketStatus(c *fiber.Ctx) error {
	ticket, err := h.setTicketStatus(c, models.ValidTicketStatus)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": ticket})
}

// SendTicketToAdmin escalates a ticket and notifies the administrators.
func (h *Handler) SendTicketToAdmin(c *fiber.Ctx) error {
	ticket, err := h.setTicketStatus(c, func(s string) bool { return s == models.TicketSendToAdmin })
	if err != nil {
		return utils.Fail(c, err)
	}

	h.notifyEscalation(c, ticket)
	return c.JSON(fiber.Map{"success": true, "data": ticket})
}

func (h *Handler) notifyEscalation(c *fiber.Ctx, ticket *models.Ticket) {
	ctx := c.UserContext()
	log := logger.Log.WithField("ticket_id", ticket.ID)

	ev := notify.TicketEscalatedEvent{
		TicketID:      ticket.ID,
		ClientID:      ticket.ClientID,
		AppointmentID: ticket.AppointmentID,
		Message:       ticket.Message,
		EscalatedAt:   h.Now(),
	}
	if detail, err := h.Tickets.Detail(ctx, ticket.ID); err == nil {
		if detail.Client != nil {
			ev.ClientName = detail.Client.Name
			ev.ClientEmail = detail.Client.Email
		}
		if detail.Appointment.ServiceProvider != nil {
			ev.ProviderName = detail.Appointment.ServiceProvider.Name
		}
	} else {
		log.WithError(err).Warn("escalated ticket has unresolved references")
	}

	if err := h.Notifier.TicketEscalated(ctx, ev); err != nil {
		log.WithError(err).Error("ticket escalation notification failed")
	}
}

func (h *Handler) ticketList(c *fiber.Ctx, f repository.TicketFilter) error {
	page, err := h.Tickets.Details(c.UserContext(), f, pageFrom(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(joinedList[repository.TicketDetail]{Success: true, Paginated: page})
}

func (h *Handler) ClientTickets(c *fiber.Ctx) error {
	id, err := storeID(c, "clientId")
	if err != nil {
		return utils.Fail(c, err)
	}
	return h.ticketList(c, repository.TicketFilter{ClientID: id})
}

func (h *Handler) AllTickets(c *fiber.Ctx) error {
	return h.ticketList(c, repository.TicketFilter{})
}

func (h *Handler) AdminTickets(c *fiber.Ctx) error {
	return h.ticketList(c, repository.TicketFilter{Status: models.TicketSendToAdmin})
}

func (h *Handler) DeleteTicket(c *fiber.Ctx) error {
	id, err := storeID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := h.Tickets.Delete(c.UserContext(), id); err != nil {
		return utils.Fail(c, notFound(err, "Ticket not found"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Ticket deleted successfully"})
}
