package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/controllers"
)

func SetupChatRoutes(app *fiber.App, h *controllers.Handler) {
	chat := app.Group("/chat")
	chat.Get("/messages/:appointmentId", h.AppointmentMessages)
	chat.Get("/provider-messages/:user1/:user2", h.Conversation)
	chat.Get("/clients/:providerId", h.ChatClients)
	chat.Post("/send", h.SendMessage)
}
