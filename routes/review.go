package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/controllers"
)

func SetupReviewRoutes(app *fiber.App, h *controllers.Handler) {
	review := app.Group("/web-api/review")
	review.Post("/add", h.AddReview)
	review.Get("/client/:clientId", h.ClientReviews)
	review.Get("/service-provider/:providerId", h.ProviderReviews)
	review.Get("/show-review/:providerId", h.PublishedReviews)
	review.Get("/show", h.AllReviews)
	review.Put("/update-status/:id", h.UpdateReviewStatus)
	review.Delete("/delete/:id", h.DeleteReview)
}
