package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cierre-fiscal/internal/application/dto"
	"github.com/jhoicas/cierre-fiscal/pkg/logger"
)

// moduleChecker lo implementa *usecase.ModuleService.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}

// RequireModule exige que la empresa del token tenga moduleName activo.
// Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 si no hay company_id en el contexto.
//   - 403 MODULE_DISABLED si el módulo no está contratado o la empresa no opera.
//   - 503 MODULE_CHECK_FAILED si falla la consulta; el error solo va al log.
func RequireModule(moduleName string, checker moduleChecker, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		active, err := checker.HasActiveModule(c.Context(), companyID, moduleName)
		if err != nil {
			log.Error().Err(err).
				Str("company_id", companyID).
				Str("module", moduleName).
				Str("path", c.Path()).
				Msg("verificación de módulo fallida")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}

		if !active {
			log.Debug().
				Str("company_id", companyID).
				Str("module", moduleName).
				Msg("módulo inactivo")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + moduleName + "' no está activo para esta empresa",
			})
		}

		return c.Next()
	}
}
