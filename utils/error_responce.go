package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/logger"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   interface{} `json:"error"`
}

// Fail writes err as a JSON error body. Errors that are not an *AppError are
// logged and reported as a generic 500.
func Fail(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = Server("Oops, internal server error!", err)
	}

	if appErr.Kind == KindServer {
		logger.Log.WithError(appErr.Err).
			WithField("path", c.Path()).
			WithField("method", c.Method()).
			Error(appErr.Message)
	}

	body := ErrorResponse{Success: false, Error: appErr.Message}
	if len(appErr.Fields) > 0 {
		body.Error = appErr.Fields
	}
	return c.Status(appErr.Status()).JSON(body)
}
