package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/controllers"
)

// SetupProviderRoutes configures the public service provider search
func SetupProviderRoutes(app *fiber.App, h *controllers.Handler) {
	provider := app.Group("/web-api/service-provider")
	provider.Get("/show", h.ListProviders)
	provider.Get("/category/:category", h.ProvidersByCategory)
	provider.Get("/city/:city", h.ProvidersByCity)
	provider.Get("/pricing", h.ProvidersByPricing)
	provider.Get("/availability/:availability", h.ProvidersByAvailability)
	provider.Get("/experience/:years", h.ProvidersByExperience)
	provider.Get("/getinfo/:id", h.GetProvider)
	provider.Get("/filters", h.ProviderFilterValues)
	provider.Get("/filter", h.FilterProviders)
}
