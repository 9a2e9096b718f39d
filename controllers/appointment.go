package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/logger"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/utils"
)

type AppointmentRequest struct {
	Client          utils.FlexID `json:"client" form:"client" validate:"required"`
	ServiceProvider utils.FlexID `json:"serviceProvider" form:"serviceProvider" validate:"required"`
	Name            string       `json:"name" form:"name" validate:"required"`
	Email           string       `json:"email" form:"email" validate:"required,email"`
	Phone           string       `json:"phone" form:"phone" validate:"required"`
	Address         string       `json:"address" form:"address"`
	AppointmentDate string       `json:"appointment_date" form:"appointment_date" validate:"required"`
	AppointmentTime string       `json:"appointment_time" form:"appointment_time" validate:"required"`
	Fees            *float64     `json:"fees" form:"fees" validate:"required,gte=0"`
	CardName        string       `json:"card_name" form:"card_name"`
	CardNumber      string       `json:"card_number" form:"card_number"`
	CardExpiry      string       `json:"card_expiry" form:"card_expiry"`
	CardCVV         string       `json:"card_cvv" form:"card_cvv"`
}

// AppointmentPatch is a partial appointment. Only the fields sent are merged.
type AppointmentPatch struct {
	Client          *utils.FlexID `json:"client"`
	ServiceProvider *utils.FlexID `json:"serviceProvider"`
	Name            *string       `json:"name"`
	Email           *string       `json:"email" validate:"omitempty,email"`
	Phone           *string       `json:"phone"`
	Address         *string       `json:"address"`
	AppointmentDate *string       `json:"appointment_date"`
	AppointmentTime *string       `json:"appointment_time"`
	Fees            *float64      `json:"fees" validate:"omitempty,gte=0"`
	CardName        *string       `json:"card_name"`
	CardNumber      *string       `json:"card_number"`
	CardExpiry      *string       `json:"card_expiry"`
	CardCVV         *string       `json:"card_cvv"`
	Status          *string       `json:"status" validate:"omitempty,oneof=Active Completed Cancelled"`
}

func (h *Handler) fieldsFromPatch(p AppointmentPatch) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if p.Client != nil {
		fields["client_id"] = p.Client.Uint()
	}
	if p.ServiceProvider != nil {
		fields["service_provider_id"] = p.ServiceProvider.Uint()
	}
	if p.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Fees != nil {
		fields["fees"] = *p.Fees
	}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	for column, v := range map[string]*string{
		"name":        p.Name,
		"phone":       p.Phone,
		"address":     p.Address,
		"card_name":   p.CardName,
		"card_number": p.CardNumber,
		"card_expiry": p.CardExpiry,
		"card_cvv":    p.CardCVV,
	} {
		if v != nil {
			fields[column] = *v
		}
	}

	switch {
	case p.AppointmentDate != nil && p.AppointmentTime != nil:
		at, err := utils.ParseAppointmentTime(*p.AppointmentDate, *p.AppointmentTime, h.Location)
		if err != nil {
			return nil, utils.Validation("Invalid appointment date or time")
		}
		fields["appointment_datetime"] = at
	case p.AppointmentDate != nil || p.AppointmentTime != nil:
		return nil, utils.Validation("appointment_date and appointment_time must be sent together")
	}
	return fields, nil
}

func (h *Handler) ListClientAppointments(c *fiber.Ctx) error {
	id, err := storeID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	page, err := h.Appointments.ListByClient(c.UserContext(), id, pageFrom(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(page)
}

func (h *Handler) ListProviderAppointments(c *fiber.Ctx) error {
	id, err := storeID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	page, err := h.Appointments.ListByProvider(c.UserContext(), id, pageFrom(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(page)
}

// ProviderEarnings godoc
// @Summary Daily earnings of a service provider, cancelled appointments excluded
// @Tags appointment
// @Produce json
// @Param id path int true "Service provider id"
// @Success 200 {object} repository.EarningsReport
// @Failure 500 {object} utils.ErrorResponse
// @Router /web-api/appointment/earnings/provider/{id} [get]
func (h *Handler) ProviderEarnings(c *fiber.Ctx) error {
	id, err := storeID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	report, err := h.Appointments.Earnings(c.UserContext(), id, h.Now(), h.Location)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(report)
}

func (h *Handler) GetAppointment(c *fiber.Ctx) error {
	id, err := storeID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	detail, err := h.Appointments.Detail(c.UserContext(), id)
	if err != nil {
		return utils.Fail(c, notFound(err, "Oops, data not found!"))
	}
	return c.JSON(detail)
}

// AddAppointment does not check that client and provider exist; joins
// surface a missing party as null.
func (h *Handler) AddAppointment(c *fiber.Ctx) error {
	var req AppointmentRequest
	if err := parseBody(c, &req); err != nil {
		return utils.Fail(c, err)
	}

	at, err := utils.ParseAppointmentTime(req.AppointmentDate, req.AppointmentTime, h.Location)
	if err != nil {
		return utils.Fail(c, utils.Validation("Invalid appointment date or time"))
	}

	appt := &models.Appointment{
		ClientID:            req.Client.Uint(),
		ServiceProviderID:   req.ServiceProvider.Uint(),
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Address:             req.Address,
		AppointmentDatetime: at,
		Fees:                *req.Fees,
		CardName:            req.CardName,
		CardNumber:          req.CardNumber,
		CardExpiry:          req.CardExpiry,
		CardCVV:             req.CardCVV,
		Status:              models.AppointmentActive,
	}
	if err := h.Appointments.Create(c.UserContext(), appt); err != nil {
		return utils.Fail(c, err)
	}

	logger.Log.WithField("appointment_id", appt.ID).WithField("provider_id", appt.ServiceProviderID).Info("appointment booked")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Appointment created successfully!",
		"data":    appt,
	})
}

func (h *Handler) patchAppointment(c *fiber.Ctx) (*models.Appointment, error) {
	id, err := storeID(c, "id")
	if err != nil {
		return nil, err
	}

	var patch AppointmentPatch
	if err := parseBody(c, &patch); err != nil {
		return nil, err
	}
	fields, err := h.fieldsFromPatch(patch)
	if err != nil {
		return nil, err
	}

	updated, err := h.Appointments.Patch(c.UserContext(), id, fields)
	if err != nil {
		return nil, notFound(err, "Appointment not found")
	}
	return updated, nil
}

// UpdateAppointment and EditAppointment both merge any subset of fields;
// only their response bodies differ.
func (h *Handler) UpdateAppointment(c *fiber.Ctx) error {
	updated, err := h.patchAppointment(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": updated})
}

func (h *Handler) EditAppointment(c *fiber.Ctx) error {
	updated, err := h.patchAppointment(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Appointment updated successfully",
		"data":    updated,
	})
}

func (h *Handler) DeleteAppointment(c *fiber.Ctx) error {
	id, err := storeID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := h.Appointments.Delete(c.UserContext(), id); err != nil {
		return utils.Fail(c, notFound(err, "Appointment not found"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Appointment deleted successfully"})
}
