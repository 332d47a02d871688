package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cierre-fiscal/internal/domain"
)

// RetentionKind impuesto al que corresponde la constancia de retención.
type RetentionKind string

const (
	RetentionVAT RetentionKind = "IVA"
	RetentionISR RetentionKind = "ISR"
)

// CertificateStatus estado de la constancia de retención.
type CertificateStatus string

const (
	CertificateStatusIssued CertificateStatus = "EMITIDA"
	CertificateStatusPaid   CertificateStatus = "PAGADA"
	CertificateStatusVoided CertificateStatus = "ANULADA"
	CertificateStatusOther  CertificateStatus = "OTRA"
)

// ParseCertificateStatus acepta los estados conocidos sin importar mayúsculas.
// Un estado vacío es un error: no se asume emitida.
func ParseCertificateStatus(s string) (CertificateStatus, error) {
	st := CertificateStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case CertificateStatusIssued, CertificateStatusPaid, CertificateStatusVoided, CertificateStatusOther:
		return st, nil
	case "":
		return "", fmt.Errorf("%w: estado de constancia vacío", domain.ErrInvalidInput)
	}
	return "", fmt.Errorf("%w: estado de constancia desconocido %q", domain.ErrInvalidInput, s)
}

// RetentionCertificate constancia emitida por un agente retenedor a favor de la empresa.
type RetentionCertificate struct {
	ID             string
	CompanyID      string
	Kind           RetentionKind
	Number         string
	AgentNIT       string
	AgentName      string
	IssueDate      time.Time
	Status         CertificateStatus
	WithheldAmount decimal.Decimal
	CreatedAt      time.Time
}

// Counts informa si la constancia se toma en cuenta (solo emitidas o pagadas).
func (c *RetentionCertificate) Counts() bool {
	return c.Status == CertificateStatusIssued || c.Status == CertificateStatusPaid
}
