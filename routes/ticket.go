package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/controllers"
)

func SetupTicketRoutes(app *fiber.App, h *controllers.Handler) {
	ticket := app.Group("/web-api/ticket")
	ticket.Post("/add", h.AddTicket)
	ticket.Put("/update-status/:id", h.UpdateTicketStatus)
	ticket.Put("/sendtoadmin/:id", h.SendTicketToAdmin)
	ticket.Get("/client/:clientId", h.ClientTickets)
	ticket.Get("/all", h.AllTickets)
	ticket.Get("/admin-tickets", h.AdminTickets)
	ticket.Delete("/delete/:id", h.DeleteTicket)
}
