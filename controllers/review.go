package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/repository"
	"github.com/meinhoongagan/servicehub/utils"
)

type ReviewRequest struct {
	Client          utils.FlexID `json:"client"`
	Appointment     utils.FlexID `json:"appointment"`
	ServiceProvider utils.FlexID `json:"serviceProvider"`
	Rating          *float64     `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Review          string       `json:"review"`
}

func (h *Handler) AddReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse request body"))
	}
	if req.Client == 0 || req.Appointment == 0 || req.ServiceProvider == 0 {
		return utils.Fail(c, utils.Validation("Client, appointment, and service provider are required"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.Fail(c, err)
	}

	review := &models.Review{
		ClientID:          req.Client.Uint(),
		AppointmentID:     req.Appointment.Uint(),
		ServiceProviderID: req.ServiceProvider.Uint(),
		Rating:            req.Rating,
		Review:            req.Review,
		Status:            models.ReviewInactive,
	}
	if err := h.Reviews.Create(c.UserContext(), review); err != nil {
		return utils.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": review})
}

func (h *Handler) reviewList(c *fiber.Ctx, f repository.ReviewFilter) error {
	page, err := h.Reviews.Details(c.UserContext(), f, pageFrom(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(joinedList[repository.ReviewDetail]{Success: true, Paginated: page})
}

// ClientReviews lists what a client wrote, with the reviewed provider's contact details.
func (h *Handler) ClientReviews(c *fiber.Ctx) error {
	id, err := storeID(c, "clientId")
	if err != nil {
		return utils.Fail(c, err)
	}
	return h.reviewList(c, repository.ReviewFilter{ClientID: id, WithProvider: true})
}

func (h *Handler) ProviderReviews(c *fiber.Ctx) error {
	id, err := storeID(c, "providerId")
	if err != nil {
		return utils.Fail(c, err)
	}
	return h.reviewList(c, repository.ReviewFilter{ServiceProviderID: id, WithClient: true})
}

// PublishedReviews lists a provider's reviews once an administrator has activated them.
func (h *Handler) PublishedReviews(c *fiber.Ctx) error {
	id, err := storeID(c, "providerId")
	if err != nil {
		return utils.Fail(c, err)
	}
	return h.reviewList(c, repository.ReviewFilter{
		ServiceProviderID: id,
		Status:            models.ReviewActive,
		WithClient:        true,
	})
}

func (h *Handler) AllReviews(c *fiber.Ctx) error {
	return h.reviewList(c, repository.ReviewFilter{WithClient: true, WithProvider: true})
}

func (h *Handler) UpdateReviewStatus(c *fiber.Ctx) error {
	id, err := storeID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil || !models.ValidReviewStatus(req.Status) {
		return utils.Fail(c, utils.Validation("Invalid status value"))
	}

	review, err := h.Reviews.SetStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return utils.Fail(c, notFound(err, "Review not found"))
	}
	return c.JSON(fiber.Map{"success": true, "data": review})
}

func (h *Handler) DeleteReview(c *fiber.Ctx) error {
	id, err := storeID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := h.Reviews.Delete(c.UserContext(), id); err != nil {
		return utils.Fail(c, notFound(err, "Review not found"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Review deleted successfully"})
}
