package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/utils"
)

type EmployeeRequest struct {
	FirstName    string           `json:"first_name" form:"first_name" validate:"required"`
	LastName     string           `json:"last_name" form:"last_name" validate:"required"`
	Age          utils.FlexString `json:"age" form:"age" validate:"required"`
	DateOfJoin   string           `json:"date_of_join" form:"date_of_join" validate:"required"`
	Title        string           `json:"title" form:"title" validate:"required"`
	Department   string           `json:"department" form:"department" validate:"required"`
	EmployeeType string           `json:"employee_type" form:"employee_type" validate:"required"`
}

func (h *Handler) AddEmployee(c *fiber.Ctx) error {
	var req EmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return utils.Fail(c, err)
	}

	emp := &models.Employee{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Age:           req.Age.String(),
		DateOfJoin:    req.DateOfJoin,
		Title:         req.Title,
		Department:    req.Department,
		EmployeeType:  req.EmployeeType,
		CurrentStatus: 1,
	}
	if err := h.Employees.Create(c.UserContext(), emp); err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Yeah, employee added successfully."})
}

func (h *Handler) ListEmployees(c *fiber.Ctx) error {
	page, err := h.Employees.List(c.UserContext(), pageFrom(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(page)
}
