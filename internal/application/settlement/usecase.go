// Package settlement orquesta la liquidación mensual: obtiene documentos y
// constancias de los colaboradores, resuelve saldos iniciales, ejecuta el motor
// puro (domain/fiscal) y confirma el resultado.
package settlement

import (
	"context"
	"fmt"

	"github.com/jhoicas/cierre-fiscal/internal/application/dto"
	"github.com/jhoicas/cierre-fiscal/internal/domain"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/jhoicas/cierre-fiscal/internal/domain/fiscal"
	"github.com/jhoicas/cierre-fiscal/internal/domain/repository"
	"github.com/jhoicas/cierre-fiscal/pkg/logger"
)

// UseCase casos de uso de liquidación de IVA e ISR.
type UseCase struct {
	companyRepo  repository.CompanyRepository
	documentRepo repository.FiscalDocumentRepository
	certRepo     repository.RetentionCertificateRepository
	carry        *CarryForwardManager
	exporters    Exporters
	log          *logger.Logger
}

// NewUseCase construye el caso de uso inyectando todas sus dependencias.
func NewUseCase(
	companyRepo repository.CompanyRepository,
	documentRepo repository.FiscalDocumentRepository,
	certRepo repository.RetentionCertificateRepository,
	settlementRepo repository.PeriodSettlementRepository,
	exporters Exporters,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &UseCase{
		companyRepo:  companyRepo,
		documentRepo: documentRepo,
		certRepo:     certRepo,
		carry:        NewCarryForwardManager(settlementRepo),
		exporters:    exporters,
		log:          log,
	}
}

// Compute ejecuta la liquidación completa sin guardarla.
//
// Retorna:
//   - domain.ErrInvalidInput     período mal formado u override negativo.
//   - domain.ErrNotFound         la empresa no existe.
//   - MissingCollaboratorDataError si falla la obtención de documentos/constancias.
//   - InvalidDocumentError       si algún documento no es clasificable.
func (uc *UseCase) Compute(ctx context.Context, companyID string, req dto.SettlementRequest) (*dto.SettlementReportResponse, error) {
	r, err := uc.Run(ctx, companyID, req)
	if err != nil {
		return nil, err
	}
	return r.ToResponse(), nil
}

// Commit vuelve a ejecutar la liquidación completa y la guarda (última escritura gana).
func (uc *UseCase) Commit(ctx context.Context, companyID string, req dto.SettlementRequest) (*dto.SettlementReportResponse, error) {
	r, err := uc.Run(ctx, companyID, req)
	if err != nil {
		return nil, err
	}
	saved, err := uc.carry.CommitSettlement(ctx, companyID, r.Period, r.Result)
	if err != nil {
		return nil, err
	}
	r.Settlement = saved
	r.Committed = true

	uc.log.Info().
		Str("company_id", companyID).
		Str("period", r.Period.String()).
		Str("tax_payable", saved.TaxPayable.StringFixed(2)).
		Str("credit_carry_forward", saved.CreditCarryForward.StringFixed(2)).
		Str("retention_balance_forward", saved.RetentionBalanceForward.StringFixed(2)).
		Msg("liquidación confirmada")
	return r.ToResponse(), nil
}

// GetCommitted devuelve la liquidación guardada del período; ErrNotFound si no existe.
func (uc *UseCase) GetCommitted(ctx context.Context, companyID, periodKey string) (*dto.PeriodSettlementResponse, error) {
	period, err := entity.ParsePeriod(periodKey)
	if err != nil {
		return nil, err
	}
	s, err := uc.carry.Committed(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return SettlementToResponse(s), nil
}

// ComputeISR calcula el ISR mensual del régimen opcional sobre las ventas del período.
func (uc *UseCase) ComputeISR(ctx context.Context, companyID, periodKey string) (*dto.ISRResponse, error) {
	period, err := entity.ParsePeriod(periodKey)
	if err != nil {
		return nil, err
	}
	if _, err := uc.company(ctx, companyID); err != nil {
		return nil, err
	}
	sales, err := uc.documentRepo.ListByPeriod(ctx, companyID, period, entity.DirectionSale)
	if err != nil {
		return nil, &domain.MissingCollaboratorDataError{Source: "documentos de venta", Err: err}
	}
	certs, err := uc.certRepo.ListByPeriod(ctx, companyID, period, entity.RetentionISR)
	if err != nil {
		return nil, &domain.MissingCollaboratorDataError{Source: "constancias ISR", Err: err}
	}
	res, err := fiscal.ComputeISR(sales, certs)
	if err != nil {
		return nil, err
	}
	uc.log.Debug().
		Str("company_id", companyID).
		Str("period", period.String()).
		Str("base", res.Base.StringFixed(2)).
		Str("payable", res.Payable.StringFixed(2)).
		Msg("ISR calculado")
	return &dto.ISRResponse{
		CompanyID: companyID,
		Period:    period.String(),
		Base:      res.Base,
		Tax:       res.Tax,
		Withheld:  res.Withheld,
		Payable:   res.Payable,
		Documents: res.Documents,
	}, nil
}

// RenderPDF recalcula y genera el reporte PDF.
func (uc *UseCase) RenderPDF(ctx context.Context, companyID string, req dto.SettlementRequest) ([]byte, string, error) {
	if uc.exporters.PDF == nil {
		return nil, "", fmt.Errorf("%w: exportación PDF no configurada", domain.ErrInvalidInput)
	}
	return uc.render(ctx, companyID, req, "pdf", uc.exporters.PDF.GenerateSettlementPDF)
}

// RenderWorkbook recalcula y genera el libro XLSX.
func (uc *UseCase) RenderWorkbook(ctx context.Context, companyID string, req dto.SettlementRequest) ([]byte, string, error) {
	if uc.exporters.Workbook == nil {
		return nil, "", fmt.Errorf("%w: exportación XLSX no configurada", domain.ErrInvalidInput)
	}
	return uc.render(ctx, companyID, req, "xlsx", uc.exporters.Workbook.ExportSettlementWorkbook)
}

// RenderForm recalcula y genera la declaración SAT-2237 en XML.
func (uc *UseCase) RenderForm(ctx context.Context, companyID string, req dto.SettlementRequest) ([]byte, string, error) {
	if uc.exporters.Form == nil {
		return nil, "", fmt.Errorf("%w: formulario SAT no configurado", domain.ErrInvalidInput)
	}
	return uc.render(ctx, companyID, req, "xml", uc.exporters.Form.BuildDeclaration)
}

func (uc *UseCase) render(
	ctx context.Context,
	companyID string,
	req dto.SettlementRequest,
	ext string,
	gen func(context.Context, *Report) ([]byte, error),
) ([]byte, string, error) {
	r, err := uc.Run(ctx, companyID, req)
	if err != nil {
		return nil, "", err
	}
	out, err := gen(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("settlement: exportar %s: %w", ext, err)
	}
	filename := fmt.Sprintf("liquidacion_iva_%s_%s.%s", r.Company.NIT, r.Period, ext)
	return out, filename, nil
}

// Run ejecuta la corrida completa y devuelve el reporte interno. Cada llamada
// vuelve a leer todo y recalcula desde cero; no hay actualización parcial.
func (uc *UseCase) Run(ctx context.Context, companyID string, req dto.SettlementRequest) (*Report, error) {
	period, err := entity.ParsePeriod(req.Period)
	if err != nil {
		return nil, err
	}
	company, err := uc.company(ctx, companyID)
	if err != nil {
		return nil, err
	}

	// ── 1. Documentos y constancias ───────────────────────────────────────────
	sales, err := uc.documentRepo.ListByPeriod(ctx, companyID, period, entity.DirectionSale)
	if err != nil {
		return nil, &domain.MissingCollaboratorDataError{Source: "documentos de venta", Err: err}
	}
	purchases, err := uc.documentRepo.ListByPeriod(ctx, companyID, period, entity.DirectionPurchase)
	if err != nil {
		return nil, &domain.MissingCollaboratorDataError{Source: "documentos de compra", Err: err}
	}
	certs, err := uc.certRepo.ListByPeriod(ctx, companyID, period, entity.RetentionVAT)
	if err != nil {
		return nil, &domain.MissingCollaboratorDataError{Source: "constancias IVA", Err: err}
	}

	// ── 2. Saldos iniciales: override > liquidación anterior > cero ──────────
	prior, err := uc.carry.LoadPriorSettlement(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	ov := overridesFromDTO(req.Overrides)
	opening := fiscal.ResolveOpening(prior, ov)

	// ── 3. Motor ──────────────────────────────────────────────────────────────
	result, err := fiscal.Settle(fiscal.SettlementInput{
		Sales:                      sales,
		Purchases:                  purchases,
		Certificates:               certs,
		Opening:                    opening,
		ExemptionCertificateCredit: ov.ExemptionCertificateCredit,
		DeclaredRetentions:         ov.DeclaredRetentions,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Str("company_id", companyID).
		Str("period", period.String()).
		Int("sales", len(sales)).
		Int("purchases", len(purchases)).
		Str("tax_payable", result.VAT.TaxPayable.StringFixed(2)).
		Msg("liquidación calculada")

	return &Report{
		Company:       company,
		Period:        period,
		Result:        result,
		Settlement:    fiscal.NewPeriodSettlement(companyID, period, result),
		Opening:       opening,
		OpeningSource: openingSource(prior, ov),
	}, nil
}

func (uc *UseCase) company(ctx context.Context, companyID string) (*entity.Company, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: company_id requerido", domain.ErrInvalidInput)
	}
	c, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, &domain.MissingCollaboratorDataError{Source: "empresa", Err: err}
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
