package response

import (
	"errors"

	apperrors "orus-accounts/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func JSON(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

func Success(c *fiber.Ctx, data interface{}) error {
	return JSON(c, fiber.StatusOK, data)
}

func Created(c *fiber.Ctx, data interface{}) error {
	return JSON(c, fiber.StatusCreated, data)
}

func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"code":  code,
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, apperrors.ErrValidation.Code, message)
}

// FromError renders err using its domain code and status. Errors that are
// not domain errors become a generic 500.
func FromError(c *fiber.Ctx, err error) error {
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		return Error(c, fiber.StatusInternalServerError, apperrors.Code(err), "internal server error")
	}
	if de.Retryable {
		c.Set(fiber.HeaderRetryAfter, "1")
	}
	return Error(c, apperrors.HTTPStatus(err), de.Code, de.Error())
}
