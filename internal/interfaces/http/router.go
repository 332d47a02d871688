package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cierre-fiscal/internal/application/settlement"
	"github.com/jhoicas/cierre-fiscal/pkg/jwt"
	"github.com/jhoicas/cierre-fiscal/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SettlementUC  *settlement.UseCase
	ModuleChecker moduleChecker
	Tokens        tokenParser
	Log           *logger.Logger
	FiscalModule  string
	ISRModule     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))
	h := NewSettlementHandler(deps.SettlementUC)
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleAccountant, jwt.RoleViewer)

	// Liquidación IVA (módulo fiscal)
	settlements := protected.Group("/settlements", RequireModule(deps.FiscalModule, deps.ModuleChecker, deps.Log))
	settlements.Post("/:period/compute", anyRole, h.Compute)
	settlements.Post("/:period", RequireRole(jwt.RoleAdmin, jwt.RoleAccountant), h.Commit)
	settlements.Get("/:period", anyRole, h.Get)
	settlements.Get("/:period/pdf", anyRole, h.PDF)
	settlements.Get("/:period/xlsx", anyRole, h.Workbook)
	settlements.Get("/:period/form", anyRole, h.Form)

	// ISR régimen opcional mensual
	isr := protected.Group("/isr", RequireModule(deps.ISRModule, deps.ModuleChecker, deps.Log))
	isr.Get("/:period", anyRole, h.ISR)
}
