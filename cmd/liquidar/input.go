package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cierre-fiscal/internal/application/dto"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/jhoicas/cierre-fiscal/pkg/nit"
)

const dateLayout = "2006-01-02"

// Input archivo JSON con todo lo necesario para liquidar un período sin base de datos.
type Input struct {
	Company         CompanyInput            `json:"company"`
	Period          string                  `json:"period"`
	Documents       []DocumentInput         `json:"documents"`
	Certificates    []CertificateInput      `json:"certificates"`
	PriorSettlement *PriorSettlementInput   `json:"prior_settlement,omitempty"`
	Overrides       dto.SettlementOverrides `json:"overrides"`
}

type CompanyInput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	NIT  string `json:"nit"`
}

type DocumentInput struct {
	ID                  string          `json:"id"`
	Direction           string          `json:"direction"`
	DocumentType        string          `json:"document_type"`
	TransactionCategory string          `json:"transaction_category"`
	Series              string          `json:"series"`
	Number              string          `json:"number"`
	IssueDate           string          `json:"issue_date"`
	CounterpartyNIT     string          `json:"counterparty_nit"`
	CounterpartyName    string          `json:"counterparty_name"`
	GoodsBase           decimal.Decimal `json:"goods_base"`
	ServicesBase        decimal.Decimal `json:"services_base"`
	TaxAmount           decimal.Decimal `json:"tax_amount"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	Levies              LeviesInput     `json:"levies"`
	VoidedAt            string          `json:"voided_at,omitempty"`
}

type LeviesInput struct {
	Fuel               decimal.Decimal `json:"fuel"`
	TourismLodging     decimal.Decimal `json:"tourism_lodging"`
	TourismFare        decimal.Decimal `json:"tourism_fare"`
	PressStamp         decimal.Decimal `json:"press_stamp"`
	Firefighters       decimal.Decimal `json:"firefighters"`
	MunicipalRate      decimal.Decimal `json:"municipal_rate"`
	AlcoholicDrinks    decimal.Decimal `json:"alcoholic_drinks"`
	NonAlcoholicDrinks decimal.Decimal `json:"non_alcoholic_drinks"`
	Tobacco            decimal.Decimal `json:"tobacco"`
	Cement             decimal.Decimal `json:"cement"`
	PortTariff         decimal.Decimal `json:"port_tariff"`
}

type CertificateInput struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	Number         string          `json:"number"`
	AgentNIT       string          `json:"agent_nit"`
	AgentName      string          `json:"agent_name"`
	IssueDate      string          `json:"issue_date"`
	Status         string          `json:"status"`
	WithheldAmount decimal.Decimal `json:"withheld_amount"`
}

// PriorSettlementInput saldos que dejó la liquidación del mes anterior.
type PriorSettlementInput struct {
	CreditCarryForward      decimal.Decimal `json:"credit_carry_forward"`
	RetentionBalanceForward decimal.Decimal `json:"retention_balance_forward"`
}

func readInput(path string) (*Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	var in Input
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("parsear %s: %w", path, err)
	}
	if err := nit.Validate(in.Company.NIT); err != nil {
		return nil, fmt.Errorf("empresa: %w", err)
	}
	in.Company.NIT = nit.Normalize(in.Company.NIT)
	if in.Company.ID == "" {
		in.Company.ID = in.Company.NIT
	}
	return &in, nil
}

func (d DocumentInput) toEntity(companyID string) (entity.FiscalDocument, error) {
	issued, err := time.Parse(dateLayout, d.IssueDate)
	if err != nil {
		return entity.FiscalDocument{}, fmt.Errorf("documento %s: fecha %q inválida", d.ID, d.IssueDate)
	}
	doc := entity.FiscalDocument{
		ID:                  d.ID,
		CompanyID:           companyID,
		Direction:           entity.Direction(d.Direction),
		DocumentType:        entity.DocumentType(d.DocumentType),
		TransactionCategory: entity.TransactionCategory(d.TransactionCategory),
		Series:              d.Series,
		Number:              d.Number,
		IssueDate:           issued,
		CounterpartyNIT:     d.CounterpartyNIT,
		CounterpartyName:    d.CounterpartyName,
		GoodsBase:           d.GoodsBase,
		ServicesBase:        d.ServicesBase,
		TaxAmount:           d.TaxAmount,
		TotalAmount:         d.TotalAmount,
		Levies:              entity.OtherLevies(d.Levies),
	}
	if d.VoidedAt != "" {
		voided, err := time.Parse(dateLayout, d.VoidedAt)
		if err != nil {
			return entity.FiscalDocument{}, fmt.Errorf("documento %s: fecha de anulación %q inválida", d.ID, d.VoidedAt)
		}
		doc.VoidedAt = &voided
	}
	return doc, nil
}

func (c CertificateInput) toEntity(companyID string) (entity.RetentionCertificate, error) {
	issued, err := time.Parse(dateLayout, c.IssueDate)
	if err != nil {
		return entity.RetentionCertificate{}, fmt.Errorf("constancia %s: fecha %q inválida", c.ID, c.IssueDate)
	}
	status, err := entity.ParseCertificateStatus(c.Status)
	if err != nil {
		return entity.RetentionCertificate{}, fmt.Errorf("constancia %s: %w", c.ID, err)
	}
	return entity.RetentionCertificate{
		ID:             c.ID,
		CompanyID:      companyID,
		Kind:           entity.RetentionKind(c.Kind),
		Number:         c.Number,
		AgentNIT:       c.AgentNIT,
		AgentName:      c.AgentName,
		IssueDate:      issued,
		Status:         status,
		WithheldAmount: c.WithheldAmount,
	}, nil
}
