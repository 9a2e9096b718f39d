package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/controllers"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App, h *controllers.Handler) {
	appointment := app.Group("/web-api/appointment")
	appointment.Get("/show/client/:id", h.ListClientAppointments)
	appointment.Get("/show/provider/:id", h.ListProviderAppointments)
	appointment.Get("/earnings/provider/:id", h.ProviderEarnings)
	appointment.Get("/getinfo/:id", h.GetAppointment)
	appointment.Post("/add", h.AddAppointment)
	appointment.Put("/update/:id", h.UpdateAppointment)
	appointment.Put("/updateAppointment/:id", h.EditAppointment)
	appointment.Delete("/delete/:id", h.DeleteAppointment)
}
