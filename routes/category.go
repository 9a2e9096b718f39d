package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/controllers"
)

// SetupCategoryRoutes configures the admin and the public category routes
func SetupCategoryRoutes(app *fiber.App, h *controllers.Handler, protected fiber.Handler) {
	admin := app.Group("/api/category")
	admin.Post("/add", protected, h.AddCategory)
	admin.Get("/show", h.ListCategories)
	admin.Get("/getedititem/:id", h.GetCategory)
	admin.Put("/update/:id", protected, h.UpdateCategory)
	admin.Delete("/delete/:id", protected, h.DeleteCategory)

	web := app.Group("/web-api/category")
	web.Get("/show", h.ListCategories)
	web.Get("/getedititem/:id", h.GetCategory)
}
