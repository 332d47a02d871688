// Package sat arma la declaración mensual de IVA (formulario SAT-2237) en XML.
//
// La raíz <DeclaracionIVA> lleva el atributo Huella: SHA-256 en hexadecimal de la
// forma canónica (C14N) del elemento raíz sin ese atributo.
package sat

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/cierre-fiscal/internal/application/settlement"
	"github.com/jhoicas/cierre-fiscal/internal/domain/fiscal"
	"github.com/jhoicas/cierre-fiscal/pkg/nit"
)

const (
	FormCode      = "SAT-2237"
	FormVersion   = "1"
	RootElement   = "DeclaracionIVA"
	FingerprintAt = "Huella"
)

var _ settlement.FormBuilder = (*DeclarationBuilder)(nil)

// DeclarationBuilder implementa settlement.FormBuilder.
type DeclarationBuilder struct{}

// NewDeclarationBuilder crea el builder.
func NewDeclarationBuilder() *DeclarationBuilder {
	return &DeclarationBuilder{}
}

// BuildDeclaration serializa el reporte como <DeclaracionIVA> con huella.
func (b *DeclarationBuilder) BuildDeclaration(_ context.Context, r *settlement.Report) ([]byte, error) {
	if r == nil || r.Company == nil {
		return nil, fmt.Errorf("sat: reporte sin empresa")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement(RootElement)
	root.CreateAttr("formulario", FormCode)
	root.CreateAttr("version", FormVersion)

	taxpayer := root.CreateElement("Contribuyente")
	taxpayer.CreateAttr("NIT", nit.Normalize(r.Company.NIT))
	taxpayer.CreateAttr("Nombre", r.Company.Name)

	period := root.CreateElement("Periodo")
	period.CreateAttr("Anio", fmt.Sprintf("%04d", r.Period.Year))
	period.CreateAttr("Mes", fmt.Sprintf("%02d", int(r.Period.Month)))

	writeBuckets(root.CreateElement("Debitos"), r.Result.SalesBuckets)
	writeBuckets(root.CreateElement("Creditos"), r.Result.PurchaseBuckets)
	writeSettlement(root.CreateElement("Liquidacion"), r.Result.VAT)

	doc.Indent(2)

	fp, err := fingerprint(root)
	if err != nil {
		return nil, err
	}
	root.CreateAttr(FingerprintAt, fp)

	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("sat: serializar XML: %w", err)
	}
	return out.Bytes(), nil
}

// VerifyFingerprint recalcula la huella de un XML generado y la compara con el atributo.
func VerifyFingerprint(xmlBytes []byte) (bool, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return false, fmt.Errorf("sat: parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != RootElement {
		return false, fmt.Errorf("sat: raíz %s no encontrada", RootElement)
	}
	declared := root.SelectAttrValue(FingerprintAt, "")
	if declared == "" {
		return false, nil
	}
	root.RemoveAttr(FingerprintAt)
	got, err := fingerprint(root)
	if err != nil {
		return false, err
	}
	return got == declared, nil
}

func writeBuckets(parent *etree.Element, t fiscal.BucketTable) {
	for _, b := range t.Rows {
		tag := "Renglon"
		if b.Synthetic {
			tag = "Total"
		}
		el := parent.CreateElement(tag)
		if !b.Synthetic {
			el.CreateAttr("codigo", string(b.Category))
			el.CreateAttr("descripcion", b.Label)
		}
		el.CreateAttr("documentos", fmt.Sprint(b.Documents))
		el.CreateAttr("base", amount(b.Base))
		el.CreateAttr("impuesto", amount(b.Tax))
	}
}

func writeSettlement(parent *etree.Element, v fiscal.VATResult) {
	fields := []struct {
		tag   string
		value decimal.Decimal
	}{
		{"DebitoFiscal", v.TotalOutputTax},
		{"CreditoCompras", v.PurchaseInputTax},
		{"RemanenteAnterior", v.PriorCredit},
		{"CreditoConstanciasExencion", v.ExemptionCertificateCredit},
		{"TotalCredito", v.TotalInputTax},
		{"DebitosMayores", v.DebitsExceedCredits},
		{"CreditosMayores", v.CreditsExceedDebits},
		{"RetencionesDeclaradas", v.DeclaredRetentions},
		{"SaldoRetencionesAnterior", v.PriorRetention},
		{"SaldoRetencionesSiguiente", v.RetentionBalanceForward},
		{"RemanenteSiguiente", v.CreditCarryForward},
		{"ImpuestoAPagar", v.TaxPayable},
	}
	for _, f := range fields {
		parent.CreateElement(f.tag).SetText(amount(f.value))
	}
}

func amount(d decimal.Decimal) string { return d.StringFixed(2) }

// fingerprint hash de la forma canónica del elemento, fuera de la declaración XML.
func fingerprint(root *etree.Element) (string, error) {
	tmp := etree.NewDocument()
	tmp.SetRoot(root.Copy())
	raw, err := tmp.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("sat: serializar para huella: %w", err)
	}
	canonical, err := canonicalizeXML(raw)
	if err != nil {
		return "", fmt.Errorf("sat: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
