package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/controllers"
)

// Setup registers every route group. protected is the access gate placed
// in front of routes that need a signed-in user.
func Setup(app *fiber.App, h *controllers.Handler, protected fiber.Handler) {
	SetupAuthRoutes(app, h, protected)
	SetupEmployeeRoutes(app, h)
	SetupCategoryRoutes(app, h, protected)
	SetupServiceRoutes(app, h, protected)
	SetupProviderRoutes(app, h)
	SetupAppointmentRoutes(app, h)
	SetupTicketRoutes(app, h)
	SetupReviewRoutes(app, h)
	SetupChatRoutes(app, h)
}
