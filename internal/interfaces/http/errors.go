package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/domain"
)

// Códigos de error devueltos en dto.ErrorResponse.Code.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidID          = "INVALID_ID"
	CodeInsufficientStock  = "INSUFFICIENT_STOCK"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeInternal           = "INTERNAL"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// Orden relevante: el primer sentinel que coincide decide.
var errorMappings = []errorMapping{
	{domain.ErrInvalidID, fiber.StatusBadRequest, CodeInvalidID},
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, CodeInsufficientStock},
	{domain.ErrInvalidTransition, fiber.StatusBadRequest, CodeInvalidTransition},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, CodeValidation},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, CodeInvalidCredentials},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, CodeUnauthorized},
	{domain.ErrForbidden, fiber.StatusForbidden, CodeForbidden},
	{domain.ErrNotFound, fiber.StatusNotFound, CodeNotFound},
	{domain.ErrDuplicate, fiber.StatusConflict, CodeConflict},
	{domain.ErrConflict, fiber.StatusConflict, CodeConflict},
}

// statusFor traduce un error de dominio a status HTTP + código.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return fe.Code, CodeNotFound
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			return fiber.StatusBadRequest, CodeValidation
		case fiber.StatusMethodNotAllowed:
			return fe.Code, CodeNotFound
		}
		return fe.Code, CodeInternal
	}
	return fiber.StatusInternalServerError, CodeInternal
}

// ErrorHandler es el fiber.ErrorHandler de la aplicación: todos los handlers devuelven el error y se mapea aquí.
// Los 500 se registran con la causa; al cliente solo llega un mensaje genérico.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, code := statusFor(err)
		detail := err.Error()
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error interno")
			detail = "error interno del servidor"
		}
		return c.Status(status).JSON(dto.ErrorResponse{Detail: detail, Code: code})
	}
}
