package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cierre-fiscal/internal/application/dto"
	"github.com/jhoicas/cierre-fiscal/internal/domain"
)

// writeError traduce la taxonomía de errores de dominio a HTTP.
//
//	ErrInvalidInput            → 400 VALIDATION
//	ErrInvalidDocument         → 422 INVALID_DOCUMENT
//	ErrNotFound                → 404 NOT_FOUND
//	ErrForbidden               → 403 FORBIDDEN
//	ErrMissingData             → 502 MISSING_DATA
//	ErrInconsistentComputation → 500 INCONSISTENT_COMPUTATION
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidDocument):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_DOCUMENT", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa o liquidación no encontrada"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrMissingData):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "MISSING_DATA", Message: err.Error()})
	case errors.Is(err, domain.ErrInconsistentComputation):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INCONSISTENT_COMPUTATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
