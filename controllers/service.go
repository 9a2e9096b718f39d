package controllers

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/logger"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/storage"
	"github.com/meinhoongagan/servicehub/utils"
)

const serviceFolder = "service"

type ServiceRequest struct {
	Title        string       `json:"title" form:"title" validate:"required"`
	Category     utils.FlexID `json:"category" form:"category" validate:"required"`
	Price        float64      `json:"price" form:"price" validate:"gte=0"`
	Description  string       `json:"description" form:"description" validate:"required"`
	Duties       string       `json:"duties" form:"duties" validate:"required"`
	Availability string       `json:"availability" form:"availability" validate:"required"`
}

// ServicePatch is a partial service. Only the fields sent are merged.
type ServicePatch struct {
	Title        *string       `json:"title" form:"title"`
	Category     *utils.FlexID `json:"category" form:"category"`
	Price        *float64      `json:"price" form:"price" validate:"omitempty,gte=0"`
	Description  *string       `json:"description" form:"description"`
	Duties       *string       `json:"duties" form:"duties"`
	Availability *string       `json:"availability" form:"availability"`
}

func (p ServicePatch) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Category != nil {
		fields["category_id"] = p.Category.Uint()
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	for column, v := range map[string]*string{
		"title":        p.Title,
		"description":  p.Description,
		"duties":       p.Duties,
		"availability": p.Availability,
	} {
		if v != nil {
			fields[column] = *v
		}
	}
	return fields
}

// serviceImages returns the uploaded images field, or nothing when the
// request is not multipart.
func serviceImages(c *fiber.Ctx) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	return form.File["images"]
}

// AddService godoc
// @Summary Create a service listing with up to ten images
// @Tags service
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 413 {object} utils.ErrorResponse
// @Router /api/service/add [post]
func (h *Handler) AddService(c *fiber.Ctx) error {
	var req ServiceRequest
	if err := parseBody(c, &req); err != nil {
		return utils.Fail(c, err)
	}

	files := serviceImages(c)
	if err := storage.CheckAll(files, storage.MaxServiceImages, storage.ServiceImageFilter); err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) || errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrTooManyFiles) {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(utils.ErrorResponse{Success: false, Error: err.Error()})
		}
		return utils.Fail(c, utils.Server("Failed to read upload", err))
	}

	ctx := c.UserContext()
	refs, err := storage.SaveAll(ctx, h.Images, serviceFolder, "images", files)
	if err != nil {
		return utils.Fail(c, utils.Server("Failed to store upload", err))
	}

	svc := &models.Service{
		Title:        req.Title,
		CategoryID:   req.Category.Uint(),
		Price:        req.Price,
		Description:  req.Description,
		Duties:       req.Duties,
		Availability: req.Availability,
		Images:       refs,
	}
	if err := h.Services.Create(ctx, svc); err != nil {
		h.rollbackUploads(ctx, refs)
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Yeah, data added successfully."})
}

func (h *Handler) UpdateService(c *fiber.Ctx) error {
	id, err := utils.ParseID(c.Params("id"))
	if err != nil {
		return utils.Fail(c, err)
	}

	var patch ServicePatch
	if err := parseBody(c, &patch); err != nil {
		return utils.Fail(c, err)
	}

	if _, err := h.Services.Update(c.UserContext(), id, patch.fields()); err != nil {
		return utils.Fail(c, notFound(err, "Oops, data not found!"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Data has been changed successfully."})
}

// GetService returns the service with categoryDetails as a single object,
// or null when the category is gone.
func (h *Handler) GetService(c *fiber.Ctx) error {
	id, err := utils.ParseID(c.Params("id"))
	if err != nil {
		return utils.Fail(c, err)
	}
	detail, err := h.Services.Detail(c.UserContext(), id)
	if err != nil {
		return utils.Fail(c, notFound(err, "Oops, data not found!"))
	}
	return c.JSON(detail)
}

// ListServices keeps categoryDetails as a list.
func (h *Handler) ListServices(c *fiber.Ctx) error {
	page, err := h.Services.ListWithCategories(c.UserContext(), pageFrom(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(page)
}

func (h *Handler) ServicesByCategory(c *fiber.Ctx) error {
	id, err := utils.ParseID(c.Params("categoryId"))
	if err != nil {
		return utils.Fail(c, utils.Validation("Invalid category ID"))
	}
	services, err := h.Services.ByCategory(c.UserContext(), id)
	if err != nil {
		return utils.Fail(c, notFound(err, "No services found for this category."))
	}
	return c.JSON(fiber.Map{"success": true, "services": services})
}

// DeleteService removes the document first; its images are removed after,
// and anything left over is retried by the sweeper.
func (h *Handler) DeleteService(c *fiber.Ctx) error {
	id, err := utils.ParseID(c.Params("id"))
	if err != nil {
		return utils.Fail(c, err)
	}

	ctx := c.UserContext()
	_, marks, err := h.Services.DeleteAndMark(ctx, id)
	if err != nil {
		return utils.Fail(c, notFound(err, "Oops, data not found!"))
	}
	h.removeFiles(ctx, marks)

	logger.Log.WithField("service_id", id).WithField("images", len(marks)).Info("service deleted")
	return c.JSON(fiber.Map{"success": true, "message": "Service item has been deleted."})
}
