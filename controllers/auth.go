package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/middleware"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/repository"
	"github.com/meinhoongagan/servicehub/storage"
	"github.com/meinhoongagan/servicehub/utils"
)

const profileFolder = "admin"

type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Role     string `json:"role" form:"role" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Phone    string `json:"phone" form:"phone" validate:"required,min=10,max=12"`
	Password string `json:"password" form:"password" validate:"min=8"`
	Address  string `json:"address" form:"address" validate:"required"`
	City     string `json:"city" form:"city" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"min=8"`
}

type ChangePasswordRequest struct {
	Password    string `json:"password" form:"password" validate:"min=8"`
	NewPassword string `json:"new_password" form:"new_password" validate:"min=8"`
}

type StatusRequest struct {
	Status string `json:"status" form:"status"`
}

type ProfileRequest struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Phone   string `json:"phone" form:"phone" validate:"required,min=10,max=12"`
	Address string `json:"address" form:"address" validate:"required"`
	City    string `json:"city" form:"city" validate:"required"`
}

type ProviderInfoRequest struct {
	Category     utils.FlexID     `json:"category" form:"category" validate:"required"`
	Availability utils.FlexString `json:"availability" form:"availability" validate:"required"`
	Experience   utils.FlexString `json:"experience" form:"experience" validate:"required"`
	Skills       utils.FlexString `json:"skills" form:"skills" validate:"required"`
	Pricing      utils.FlexString `json:"pricing" form:"pricing" validate:"required"`
}

// ListUsers returns every account, password hashes included.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	page, err := h.Users.List(c.UserContext(), pageFrom(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(page)
}

func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id, err := storeID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := h.Users.Delete(c.UserContext(), id); err != nil {
		return utils.Fail(c, notFound(err, "Oops, data not found!"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "User has been deleted."})
}

// SetUserStatus suspends or re-activates an account.
func (h *Handler) SetUserStatus(c *fiber.Ctx) error {
	id, err := storeID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil || (req.Status != models.UserActive && req.Status != models.UserSuspended) {
		return utils.Fail(c, utils.Validation("Invalid status value."))
	}

	if _, err := h.Users.SetStatus(c.UserContext(), id, req.Status); err != nil {
		return utils.Fail(c, notFound(err, "User not found."))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User account has been " + strings.ToLower(req.Status) + ".",
	})
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/user/register [post]
func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return utils.Fail(c, err)
	}

	ctx := c.UserContext()
	_, err := h.Users.FindByEmail(ctx, req.Email)
	if err == nil {
		return utils.Fail(c, utils.Conflict("Sorry, a user already exists with the same email!"))
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return utils.Fail(c, err)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.Fail(c, utils.Server("Failed to hash password", err))
	}

	user := &models.User{
		Name:     req.Name,
		Role:     req.Role,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: hashed,
		Address:  req.Address,
		City:     req.City,
		Status:   models.UserActive,
	}
	if err := h.Users.Create(ctx, user); err != nil {
		return utils.Fail(c, err)
	}

	return h.respondWithToken(c, user)
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /auth/user/login [post]
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return utils.Fail(c, err)
	}

	user, err := h.Users.FindByEmail(c.UserContext(), req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.Fail(c, utils.Auth("Please try to login with correct credentials!"))
	}
	if err != nil {
		return utils.Fail(c, err)
	}

	if user.IsSuspended() {
		return utils.Fail(c, utils.Forbidden("Your account has been suspended. Please contact support."))
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		return utils.Fail(c, utils.Auth("Please try to login with correct credentials!"))
	}

	return h.respondWithToken(c, user)
}

func (h *Handler) respondWithToken(c *fiber.Ctx, user *models.User) error {
	token, _, err := utils.IssueToken(h.JWTSecret, user, h.JWTTTL)
	if err != nil {
		return utils.Fail(c, utils.Server("Failed to generate token", err))
	}
	return c.JSON(fiber.Map{"success": true, "authToken": token})
}

// GetUser returns the authenticated account without its password.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	user, err := h.Users.Get(c.UserContext(), middleware.UserID(c))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.Fail(c, utils.Validation("Sorry, data not found!"))
	}
	if err != nil {
		return utils.Fail(c, err)
	}
	user.Password = ""
	return c.JSON(fiber.Map{"success": true, "admin": user})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	jti, exp := middleware.TokenID(c)
	if err := h.Tokens.Revoke(c.UserContext(), jti, exp); err != nil {
		return utils.Fail(c, utils.Server("Failed to revoke token", err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Logged out successfully."})
}

func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	id, err := storeID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}

	var req ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return utils.Fail(c, err)
	}

	ctx := c.UserContext()
	user, err := h.Users.Get(ctx, id)
	if err != nil {
		return utils.Fail(c, notFound(err, "Oops, data not found!"))
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		return utils.Fail(c, utils.Auth("Please try to enter correct password!"))
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.Fail(c, utils.Server("Failed to hash password", err))
	}
	if err := h.Users.SetPassword(ctx, id, hashed); err != nil {
		return utils.Fail(c, notFound(err, "Oops, data not found!"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Password has been changed successfully."})
}

// UpdateProfile changes contact details and, when a profilePicture file is
// sent, replaces the profile picture.
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := parseBody(c, &req); err != nil {
		return utils.Fail(c, err)
	}
	return h.updateWithUpload(c, "profilePicture", "profile_picture", map[string]interface{}{
		"name":    req.Name,
		"phone":   req.Phone,
		"address": req.Address,
		"city":    req.City,
	}, func(u *models.User) string { return u.ProfilePicture })
}

// UpdateProviderInfo changes a provider's offering and, when an
// identityProof file is sent, replaces the identity proof.
func (h *Handler) UpdateProviderInfo(c *fiber.Ctx) error {
	var req ProviderInfoRequest
	if err := parseBody(c, &req); err != nil {
		return utils.Fail(c, err)
	}
	return h.updateWithUpload(c, "identityProof", "identity_proof", map[string]interface{}{
		"category_id":  req.Category.Uint(),
		"availability": req.Availability.String(),
		"experience":   req.Experience.String(),
		"skills":       req.Skills.String(),
		"pricing":      req.Pricing.String(),
	}, func(u *models.User) string { return u.IdentityProof })
}

// updateWithUpload stores the optional file first, updates the user, and
// only then retires the file it replaced. A failed update removes the new file.
func (h *Handler) updateWithUpload(c *fiber.Ctx, field, column string, fields map[string]interface{}, current func(*models.User) string) error {
	id, err := storeID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}

	ctx := c.UserContext()
	user, err := h.Users.Get(ctx, id)
	if err != nil {
		return utils.Fail(c, notFound(err, "Oops, data not found!"))
	}
	previous := current(user)

	var newRef string
	// Any FormFile error means the request carries no file for field.
	if fh, ferr := c.FormFile(field); ferr == nil {
		if err := storage.ProfileImageFilter(fh); err != nil {
			return utils.Fail(c, utils.Validation("Error: not a valid file"))
		}
		newRef, err = h.Images.Save(ctx, profileFolder, field, fh)
		if err != nil {
			return utils.Fail(c, utils.Server("Failed to store upload", err))
		}
		fields[column] = newRef
	}

	updated, err := h.Users.Update(ctx, id, fields)
	if err != nil {
		if newRef != "" {
			h.rollbackUploads(ctx, []string{newRef})
		}
		return utils.Fail(c, notFound(err, "Oops, data not found!"))
	}

	if newRef != "" && previous != "" && previous != newRef {
		h.retireFile(ctx, previous)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Data has been changed successfully.",
		"adminData": updated,
	})
}
