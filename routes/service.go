package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/controllers"
)

func SetupServiceRoutes(app *fiber.App, h *controllers.Handler, protected fiber.Handler) {
	admin := app.Group("/api/service")
	admin.Post("/add", protected, h.AddService)
	admin.Put("/update/:id", h.UpdateService)
	admin.Get("/getedititem/:id", h.GetService)
	admin.Get("/show", h.ListServices)
	admin.Delete("/delete/:id", protected, h.DeleteService)

	web := app.Group("/web-api/service")
	web.Get("/show", h.ListServices)
	web.Get("/getedititem/:id", h.GetService)
	web.Get("/getservicesbycategory/:categoryId", h.ServicesByCategory)
}
