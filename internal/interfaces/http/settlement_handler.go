package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cierre-fiscal/internal/application/dto"
	"github.com/jhoicas/cierre-fiscal/internal/application/settlement"
)

// SettlementHandler maneja la liquidación mensual de IVA e ISR (protegido).
type SettlementHandler struct {
	uc *settlement.UseCase
}

// NewSettlementHandler construye el handler.
func NewSettlementHandler(uc *settlement.UseCase) *SettlementHandler {
	return &SettlementHandler{uc: uc}
}

// Compute calcula la liquidación del período sin guardarla.
// POST /api/settlements/:period/compute
//
// Body opcional: dto.SettlementOverrides.
func (h *SettlementHandler) Compute(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	req, err := requestFromBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Compute(c.Context(), companyID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Commit recalcula y guarda la liquidación del período. Reemplaza la anterior.
// POST /api/settlements/:period
func (h *SettlementHandler) Commit(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	req, err := requestFromBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Commit(c.Context(), companyID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get devuelve la liquidación guardada.
// GET /api/settlements/:period
func (h *SettlementHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetCommitted(c.Context(), companyID, c.Params("period"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF GET /api/settlements/:period/pdf
func (h *SettlementHandler) PDF(c *fiber.Ctx) error {
	return h.download(c, "application/pdf", h.uc.RenderPDF)
}

// Workbook GET /api/settlements/:period/xlsx
func (h *SettlementHandler) Workbook(c *fiber.Ctx) error {
	return h.download(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", h.uc.RenderWorkbook)
}

// Form GET /api/settlements/:period/form
func (h *SettlementHandler) Form(c *fiber.Ctx) error {
	return h.download(c, "application/xml", h.uc.RenderForm)
}

// ISR calcula el ISR mensual del régimen opcional.
// GET /api/isr/:period
func (h *SettlementHandler) ISR(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ComputeISR(c.Context(), companyID, c.Params("period"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

type renderFunc func(ctx context.Context, companyID string, req dto.SettlementRequest) ([]byte, string, error)

// download los overrides llegan como query params con los mismos nombres del JSON.
func (h *SettlementHandler) download(c *fiber.Ctx, contentType string, render renderFunc) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	req, err := requestFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, filename, err := render(c.Context(), companyID, req)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}

func requestFromBody(c *fiber.Ctx) (dto.SettlementRequest, error) {
	req := dto.SettlementRequest{Period: c.Params("period")}
	if len(c.Body()) == 0 {
		return req, nil
	}
	if err := c.BodyParser(&req.Overrides); err != nil {
		return req, err
	}
	return req, nil
}

func requestFromQuery(c *fiber.Ctx) (dto.SettlementRequest, error) {
	req := dto.SettlementRequest{Period: c.Params("period")}
	fields := []struct {
		key string
		dst **decimal.Decimal
	}{
		{"credit_carry_forward", &req.Overrides.CreditCarryForward},
		{"retention_carry_forward", &req.Overrides.RetentionCarryForward},
		{"exemption_certificate_credit", &req.Overrides.ExemptionCertificateCredit},
		{"declared_retentions", &req.Overrides.DeclaredRetentions},
	}
	for _, f := range fields {
		raw := c.Query(f.key)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return req, fmt.Errorf("%s: monto inválido %q", f.key, raw)
		}
		*f.dst = &v
	}
	return req, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token"})
}
