package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/repository"
	"github.com/meinhoongagan/servicehub/utils"
)

const (
	defaultMinPrice = 0
	defaultMaxPrice = 10000
)

func (h *Handler) ListProviders(c *fiber.Ctx) error {
	page, err := h.Users.ListProviders(c.UserContext(), pageFrom(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(page)
}

// searchProviders replies with the bare list of providers matching f.
func (h *Handler) searchProviders(c *fiber.Ctx, f repository.ProviderFilter) error {
	users, err := h.Users.Providers(c.UserContext(), f)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(users)
}

func (h *Handler) ProvidersByCategory(c *fiber.Ctx) error {
	id, err := utils.ParseID(c.Params("category"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return h.searchProviders(c, repository.ProviderFilter{CategoryID: &id})
}

func (h *Handler) ProvidersByCity(c *fiber.Ctx) error {
	return h.searchProviders(c, repository.ProviderFilter{City: c.Params("city")})
}

func (h *Handler) ProvidersByAvailability(c *fiber.Ctx) error {
	return h.searchProviders(c, repository.ProviderFilter{Availability: c.Params("availability")})
}

// ProvidersByPricing matches the leading number of each provider's pricing
// against [min, max]. Both bounds are optional.
func (h *Handler) ProvidersByPricing(c *fiber.Ctx) error {
	min, err := floatQuery(c, "min", defaultMinPrice)
	if err != nil {
		return utils.Fail(c, err)
	}
	max, err := floatQuery(c, "max", defaultMaxPrice)
	if err != nil {
		return utils.Fail(c, err)
	}
	return h.searchProviders(c, repository.ProviderFilter{MinPrice: &min, MaxPrice: &max})
}

func (h *Handler) ProvidersByExperience(c *fiber.Ctx) error {
	years, err := strconv.ParseFloat(c.Params("years"), 64)
	if err != nil {
		return utils.Fail(c, utils.Validation("Invalid experience value"))
	}
	return h.searchProviders(c, repository.ProviderFilter{MinExperience: &years})
}

func (h *Handler) GetProvider(c *fiber.Ctx) error {
	id, err := storeID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	user, err := h.Users.GetProvider(c.UserContext(), id)
	if err != nil {
		return utils.Fail(c, notFound(err, "Service Provider not found"))
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

func (h *Handler) ProviderFilterValues(c *fiber.Ctx) error {
	values, err := h.Users.ProviderFilterValues(c.UserContext())
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(values)
}

// FilterProviders applies every query parameter present as an exact match.
func (h *Handler) FilterProviders(c *fiber.Ctx) error {
	f := repository.ProviderFilter{
		City:         c.Query("city"),
		Pricing:      c.Query("pricing"),
		Availability: c.Query("availability"),
		Experience:   c.Query("experience"),
	}
	if raw := c.Query("category"); raw != "" {
		id, err := utils.ParseID(raw)
		if err != nil {
			return utils.Fail(c, err)
		}
		f.CategoryID = &id
	}

	users, err := h.Users.Providers(c.UserContext(), f)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": users})
}

func floatQuery(c *fiber.Ctx, name string, def float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, ok := repository.LeadingFloat(raw)
	if !ok {
		return 0, utils.Validation("Invalid " + name + " value")
	}
	return v, nil
}
