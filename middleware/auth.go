package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/meinhoongagan/servicehub/logger"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/repository"
	"github.com/meinhoongagan/servicehub/utils"
)

// Locals keys set by Protected.
const (
	LocalUserID   = "userID"
	LocalRole     = "role"
	LocalJTI      = "jti"
	LocalTokenExp = "tokenExp"
)

type UserLoader interface {
	Get(ctx context.Context, id uint) (*models.User, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Protected verifies the bearer token, then rejects revoked tokens and
// tokens whose user has since been deleted or suspended.
func Protected(secret []byte, users UserLoader, revoked RevocationChecker) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    secret,
		SigningMethod: jwtware.HS256,
		ErrorHandler:  jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return utils.Fail(c, utils.Unauthorized("Invalid token"))
			}

			claims, err := utils.ClaimsFromToken(token)
			if err != nil {
				logger.Log.WithError(err).Debug("rejecting token with bad claims")
				return utils.Fail(c, utils.Unauthorized("Invalid token claims"))
			}

			ctx := c.UserContext()
			isRevoked, err := revoked.IsRevoked(ctx, claims.JTI)
			if err != nil {
				return utils.Fail(c, utils.Server("Oops, internal server error!", err))
			}
			if isRevoked {
				return utils.Fail(c, utils.Unauthorized("Token has been revoked"))
			}

			user, err := users.Get(ctx, claims.UserID)
			if errors.Is(err, repository.ErrNotFound) {
				return utils.Fail(c, utils.Unauthorized("User no longer exists"))
			}
			if err != nil {
				return utils.Fail(c, utils.Server("Oops, internal server error!", err))
			}
			if user.IsSuspended() {
				return utils.Fail(c, utils.Forbidden("Your account has been suspended. Please contact support."))
			}

			c.Locals(LocalUserID, user.ID)
			c.Locals(LocalRole, user.Role)
			c.Locals(LocalJTI, claims.JTI)
			c.Locals(LocalTokenExp, claims.ExpiresAt)
			return c.Next()
		},
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.EqualFold(err.Error(), "missing or malformed JWT") {
		return utils.Fail(c, utils.Unauthorized("Please authenticate using a valid token"))
	}
	return utils.Fail(c, utils.Unauthorized("Invalid or expired token"))
}

// UserID returns the authenticated user id set by Protected.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}

// TokenID returns the id and expiry of the token used for the request.
func TokenID(c *fiber.Ctx) (string, time.Time) {
	jti, _ := c.Locals(LocalJTI).(string)
	exp, _ := c.Locals(LocalTokenExp).(time.Time)
	return jti, exp
}
