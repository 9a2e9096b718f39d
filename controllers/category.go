package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/utils"
)

type CategoryRequest struct {
	Name        string `json:"name" form:"name" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
}

// CategoryPatch is a partial category. Only the fields sent are merged.
type CategoryPatch struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
}

func (h *Handler) AddCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return utils.Fail(c, err)
	}

	category := &models.Category{Name: req.Name, Description: req.Description}
	if err := h.Categories.Create(c.UserContext(), category); err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Yeah, data added successfully."})
}

// ListCategories serves both the admin and the public listing.
func (h *Handler) ListCategories(c *fiber.Ctx) error {
	page, err := h.Categories.List(c.UserContext(), pageFrom(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(page)
}

func (h *Handler) GetCategory(c *fiber.Ctx) error {
	id, err := utils.ParseID(c.Params("id"))
	if err != nil {
		return utils.Fail(c, err)
	}
	category, err := h.Categories.Get(c.UserContext(), id)
	if err != nil {
		return utils.Fail(c, notFound(err, "Oops, data not found!"))
	}
	return c.JSON(category)
}

func (h *Handler) UpdateCategory(c *fiber.Ctx) error {
	id, err := utils.ParseID(c.Params("id"))
	if err != nil {
		return utils.Fail(c, err)
	}

	var patch CategoryPatch
	if err := parseBody(c, &patch); err != nil {
		return utils.Fail(c, err)
	}

	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if _, err := h.Categories.Update(c.UserContext(), id, fields); err != nil {
		return utils.Fail(c, notFound(err, "Oops, data not found!"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Data has been changed successfully."})
}

func (h *Handler) DeleteCategory(c *fiber.Ctx) error {
	id, err := utils.ParseID(c.Params("id"))
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := h.Categories.Delete(c.UserContext(), id); err != nil {
		return utils.Fail(c, notFound(err, "Oops, data not found!"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Category has been deleted."})
}
