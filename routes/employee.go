package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/controllers"
)

func SetupEmployeeRoutes(app *fiber.App, h *controllers.Handler) {
	employee := app.Group("/api/employee")
	employee.Post("/add", h.AddEmployee)
	employee.Get("/show", h.ListEmployees)
}
