package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/controllers"
)

// SetupAuthRoutes configures account routes
func SetupAuthRoutes(app *fiber.App, h *controllers.Handler, protected fiber.Handler) {
	user := app.Group("/auth/user")

	user.Get("/show", h.ListUsers)
	user.Delete("/delete/:id", h.DeleteUser)
	user.Put("/status/:id", h.SetUserStatus)

	// Public routes
	user.Post("/register", h.Register)
	user.Post("/login", h.Login)

	// Protected routes
	user.Get("/getuser", protected, h.GetUser)
	user.Put("/update/:id", protected, h.ChangePassword)
	user.Put("/updateinfo/:id", protected, h.UpdateProfile)
	user.Put("/updateotherinfo/:id", protected, h.UpdateProviderInfo)
	user.Post("/logout", protected, h.Logout)
}
