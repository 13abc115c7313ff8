package handlers

import (
	"errors"

	"marketplace/internal/domain"
	"marketplace/internal/log"
	"marketplace/internal/services"
	"marketplace/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// fail maps service errors onto the wire. Validation-class failures carry
// structured field errors; everything unrecognized is logged and hidden
// behind a generic 500.
func fail(c *fiber.Ctx, action string, err error) error {
	var dup *services.DuplicateError
	switch {
	case errors.As(err, &dup):
		return fieldErrors(c, validate.FieldError{Param: dup.Field, Message: "is already in use"})
	case errors.Is(err, domain.ErrValidation):
		return fieldErrors(c, validate.FieldError{Param: "body", Message: err.Error()})
	case errors.Is(err, domain.ErrBadCreds):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": domain.ErrBadCreds.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.SendStatus(fiber.StatusNotFound)
	case errors.Is(err, domain.ErrForbidden):
		return c.SendStatus(fiber.StatusForbidden)
	default:
		log.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Oops, an error occured"})
	}
}

func fieldErrors(c *fiber.Ctx, errs ...validate.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
}

func badBody(c *fiber.Ctx) error {
	return fieldErrors(c, validate.FieldError{Param: "body", Message: "malformed request body"})
}
