package fiscal_test

import (
	"testing"
	"time"

	"github.com/jhoicas/cierre-fiscal/internal/domain"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/jhoicas/cierre-fiscal/internal/domain/fiscal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Compensación de retenciones (escenarios literales)
// ──────────────────────────────────────────────────────────────────────────────

func TestOffsetRetentions_Escenarios(t *testing.T) {
	tests := []struct {
		name        string
		d, c, rp    string
		rd          string
		wantPayable string
		wantForward string
	}{
		{"débito sin retenciones", "500", "0", "0", "0", "500.00", "0.00"},
		{"retenciones no alcanzan", "500", "0", "200", "100", "200.00", "0.00"},
		{"retenciones sobran", "200", "0", "200", "100", "0.00", "100.00"},
		{"retenciones igualan el débito", "300", "0", "200", "100", "0.00", "0.00"},
		{"crédito con retenciones", "0", "300", "100", "50", "0.00", "150.00"},
		{"crédito sin retenciones", "0", "300", "0", "0", "0.00", "0.00"},
		{"cero sin retenciones", "0", "0", "0", "0", "0.00", "0.00"},
		{"cero con retenciones", "0", "0", "0", "75.25", "0.00", "75.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, err := fiscal.OffsetRetentions(dec(tt.d), dec(tt.c), dec(tt.rp), dec(tt.rd))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPayable, off.Payable.StringFixed(2))
			assert.Equal(t, tt.wantForward, off.BalanceForward.StringFixed(2))
		})
	}
}

func TestOffsetRetentions_DebitoYCreditoAlaVez(t *testing.T) {
	_, err := fiscal.OffsetRetentions(dec("1"), dec("1"), dec("0"), dec("0"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInconsistentComputation)
	var ce *domain.ComputationInconsistencyError
	assert.ErrorAs(t, err, &ce)
}

// ──────────────────────────────────────────────────────────────────────────────
// Liquidación de IVA
// ──────────────────────────────────────────────────────────────────────────────

func mustTables(t *testing.T, sales, purchases []entity.FiscalDocument) (fiscal.BucketTable, fiscal.BucketTable) {
	t.Helper()
	s, err := fiscal.Aggregate(sales, entity.DirectionSale)
	require.NoError(t, err)
	p, err := fiscal.Aggregate(purchases, entity.DirectionPurchase)
	require.NoError(t, err)
	return s, p
}

func TestSettleVAT_DebitoConRetenciones(t *testing.T) {
	sales, purchases := mustTables(t,
		[]entity.FiscalDocument{sale(entity.TxGoods, "10000", "0", "1200")},
		[]entity.FiscalDocument{purchase(entity.TxServices, "0", "5000", "600")},
	)
	r, err := fiscal.SettleVAT(fiscal.VATInput{
		Sales:     sales,
		Purchases: purchases,
		Certificates: []entity.RetentionCertificate{
			cert(entity.RetentionVAT, entity.CertificateStatusIssued, "100"),
			cert(entity.RetentionVAT, entity.CertificateStatusPaid, "50"),
			cert(entity.RetentionVAT, entity.CertificateStatusVoided, "999"),
			cert(entity.RetentionVAT, entity.CertificateStatusOther, "999"),
			cert(entity.RetentionISR, entity.CertificateStatusIssued, "999"),
		},
		PriorCredit:                dec("100"),
		PriorRetention:             dec("20"),
		ExemptionCertificateCredit: dec("0"),
	})
	require.NoError(t, err)

	assert.Equal(t, "1200.00", r.TotalOutputTax.StringFixed(2))
	assert.Equal(t, "600.00", r.PurchaseInputTax.StringFixed(2))
	assert.Equal(t, "700.00", r.TotalInputTax.StringFixed(2))
	assert.Equal(t, "500.00", r.DebitsExceedCredits.StringFixed(2))
	assert.True(t, r.CreditsExceedDebits.IsZero())
	assert.Equal(t, "150.00", r.CertifiedRetentions.StringFixed(2))
	assert.Equal(t, "150.00", r.DeclaredRetentions.StringFixed(2))
	assert.Equal(t, "330.00", r.TaxPayable.StringFixed(2))
	assert.True(t, r.RetentionBalanceForward.IsZero())
	assert.True(t, r.CreditCarryForward.IsZero())
}

func TestSettleVAT_CreditoSeArrastra(t *testing.T) {
	sales, purchases := mustTables(t,
		[]entity.FiscalDocument{sale(entity.TxGoods, "1000", "0", "120")},
		[]entity.FiscalDocument{purchase(entity.TxFixedAssets, "5000", "0", "600")},
	)
	r, err := fiscal.SettleVAT(fiscal.VATInput{
		Sales:                      sales,
		Purchases:                  purchases,
		PriorCredit:                dec("0"),
		PriorRetention:             dec("40"),
		ExemptionCertificateCredit: dec("30"),
	})
	require.NoError(t, err)

	assert.Equal(t, "630.00", r.TotalInputTax.StringFixed(2))
	assert.Equal(t, "510.00", r.CreditsExceedDebits.StringFixed(2))
	assert.Equal(t, "510.00", r.CreditCarryForward.StringFixed(2))
	assert.True(t, r.TaxPayable.IsZero())
	assert.Equal(t, "40.00", r.RetentionBalanceForward.StringFixed(2))
}

func TestSettleVAT_RetencionesDeclaradasManual(t *testing.T) {
	sales, purchases := mustTables(t,
		[]entity.FiscalDocument{sale(entity.TxGoods, "5000", "0", "600")},
		nil,
	)
	r, err := fiscal.SettleVAT(fiscal.VATInput{
		Sales:              sales,
		Purchases:          purchases,
		Certificates:       []entity.RetentionCertificate{cert(entity.RetentionVAT, entity.CertificateStatusIssued, "100")},
		DeclaredRetentions: decPtr("250"),
	})
	require.NoError(t, err)

	assert.Equal(t, "100.00", r.CertifiedRetentions.StringFixed(2))
	assert.Equal(t, "250.00", r.DeclaredRetentions.StringFixed(2))
	assert.Equal(t, "350.00", r.TaxPayable.StringFixed(2))
}

func TestSettleVAT_OverrideNegativo(t *testing.T) {
	_, err := fiscal.SettleVAT(fiscal.VATInput{PriorCredit: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fiscal.SettleVAT(fiscal.VATInput{DeclaredRetentions: decPtr("-0.01")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettleVAT_ExclusionMutua(t *testing.T) {
	cases := [][2]string{{"120", "0"}, {"0", "120"}, {"120", "120"}, {"0", "0"}}
	for _, c := range cases {
		sales, purchases := mustTables(t,
			[]entity.FiscalDocument{sale(entity.TxGoods, "1000", "0", c[0])},
			[]entity.FiscalDocument{purchase(entity.TxGoods, "1000", "0", c[1])},
		)
		r, err := fiscal.SettleVAT(fiscal.VATInput{Sales: sales, Purchases: purchases})
		require.NoError(t, err)
		assert.False(t, r.CreditsExceedDebits.IsPositive() && r.DebitsExceedCredits.IsPositive())
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ISR
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeISR_Tramos(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		wantTax  string
		wantBase string
	}{
		{"en el umbral", "30000", "1500.00", "30000.00"},
		{"sobre el umbral", "50000", "2900.00", "50000.00"},
		{"bajo el umbral", "12345.67", "617.28", "12345.67"},
		{"centavos sobre el umbral", "30000.10", "1500.01", "30000.10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := fiscal.ComputeISR([]entity.FiscalDocument{sale(entity.TxGoods, tt.base, "0", "0")}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBase, r.Base.StringFixed(2))
			assert.Equal(t, tt.wantTax, r.Tax.StringFixed(2))
			assert.Equal(t, tt.wantTax, r.Payable.StringFixed(2))
		})
	}
}

func TestComputeISR_BaseCeroOTodoAnulado(t *testing.T) {
	for name, docs := range map[string][]entity.FiscalDocument{
		"sin documentos": nil,
		"todo anulado":   {voided(sale(entity.TxGoods, "50000", "0", "6000"))},
		"base negativa": {
			sale(entity.TxGoods, "100", "0", "12"),
			withType(sale(entity.TxGoods, "300", "0", "36"), entity.DocTypeCreditNote),
		},
	} {
		t.Run(name, func(t *testing.T) {
			r, err := fiscal.ComputeISR(docs, []entity.RetentionCertificate{
				cert(entity.RetentionISR, entity.CertificateStatusIssued, "500"),
			})
			require.NoError(t, err)
			assert.True(t, r.Base.IsZero())
			assert.True(t, r.Tax.IsZero())
			assert.True(t, r.Withheld.IsZero())
			assert.True(t, r.Payable.IsZero())
		})
	}
}

func TestComputeISR_RetencionesYNotasDeCredito(t *testing.T) {
	docs := []entity.FiscalDocument{
		sale(entity.TxGoods, "40000", "0", "4800"),
		sale(entity.TxServices, "0", "15000", "1800"),
		withType(sale(entity.TxGoods, "5000", "0", "600"), entity.DocTypeCreditNote),
		voided(sale(entity.TxGoods, "99999", "0", "0")),
	}
	certs := []entity.RetentionCertificate{
		cert(entity.RetentionISR, entity.CertificateStatusIssued, "1000"),
		cert(entity.RetentionISR, entity.CertificateStatusVoided, "1000"),
		cert(entity.RetentionVAT, entity.CertificateStatusIssued, "1000"),
	}
	r, err := fiscal.ComputeISR(docs, certs)
	require.NoError(t, err)

	assert.Equal(t, "50000.00", r.Base.StringFixed(2))
	assert.Equal(t, "2900.00", r.Tax.StringFixed(2))
	assert.Equal(t, "1000.00", r.Withheld.StringFixed(2))
	assert.Equal(t, "1900.00", r.Payable.StringFixed(2))
	assert.Equal(t, 3, r.Documents)

	// Retenciones mayores al impuesto: no hay saldo negativo.
	r, err = fiscal.ComputeISR(docs[:1], []entity.RetentionCertificate{
		cert(entity.RetentionISR, entity.CertificateStatusPaid, "5000"),
	})
	require.NoError(t, err)
	assert.True(t, r.Payable.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Corrida completa y arrastre de saldos
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveOpening_Precedencia(t *testing.T) {
	prior := &entity.PeriodSettlement{CreditCarryForward: dec("80"), RetentionBalanceForward: dec("15")}

	ob := fiscal.ResolveOpening(nil, fiscal.ManualOverrides{})
	assert.True(t, ob.Credit.IsZero())
	assert.True(t, ob.Retention.IsZero())

	ob = fiscal.ResolveOpening(prior, fiscal.ManualOverrides{})
	assert.Equal(t, "80.00", ob.Credit.StringFixed(2))
	assert.Equal(t, "15.00", ob.Retention.StringFixed(2))

	ob = fiscal.ResolveOpening(prior, fiscal.ManualOverrides{CreditCarryForward: decPtr("5")})
	assert.Equal(t, "5.00", ob.Credit.StringFixed(2))
	assert.Equal(t, "15.00", ob.Retention.StringFixed(2))
	assert.Equal(t, "80.00", prior.CreditCarryForward.StringFixed(2), "el override no toca el registro previo")
}

func TestSettle_Idempotente(t *testing.T) {
	in := fiscal.SettlementInput{
		Sales: []entity.FiscalDocument{
			sale(entity.TxGoods, "1500.50", "0", "180.06"),
			sale(entity.TxGoodsAndServices, "300", "700", "120"),
		},
		Purchases: []entity.FiscalDocument{
			purchase(entity.TxFuels, "800", "0", "96"),
			withType(purchase(entity.TxGoods, "100", "0", "12"), entity.DocTypeCreditNote),
		},
		Certificates:               []entity.RetentionCertificate{cert(entity.RetentionVAT, entity.CertificateStatusIssued, "33.33")},
		Opening:                    fiscal.OpeningBalances{Credit: dec("10"), Retention: dec("5")},
		ExemptionCertificateCredit: decPtr("2.50"),
	}
	first, err := fiscal.Settle(in)
	require.NoError(t, err)
	second, err := fiscal.Settle(in)
	require.NoError(t, err)

	period, _ := entity.NewPeriod(2024, time.March)
	a := fiscal.NewPeriodSettlement("empresa-1", period, first)
	b := fiscal.NewPeriodSettlement("empresa-1", period, second)
	assert.Equal(t, a, b)
	assert.Equal(t, snapshot(first.SalesBuckets), snapshot(second.SalesBuckets))
	assert.Equal(t, snapshot(first.PurchaseBuckets), snapshot(second.PurchaseBuckets))

	assert.Equal(t, "300.06", first.VAT.TotalOutputTax.StringFixed(2))
	assert.Equal(t, "96.50", first.VAT.TotalInputTax.StringFixed(2))
	assert.Equal(t, "203.56", first.VAT.DebitsExceedCredits.StringFixed(2))
	assert.Equal(t, "165.23", first.VAT.TaxPayable.StringFixed(2))
	assert.Equal(t, 1, first.PurchaseSummary.CreditNotes)
}

func TestSettle_DocumentoInvalidoDetieneLaCorrida(t *testing.T) {
	bad := sale(entity.TxGoods, "1", "0", "0")
	bad.TotalAmount = dec("-1")
	_, err := fiscal.Settle(fiscal.SettlementInput{Sales: []entity.FiscalDocument{bad}})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestSettle_SinDocumentosTodoCero(t *testing.T) {
	r, err := fiscal.Settle(fiscal.SettlementInput{})
	require.NoError(t, err)
	assert.True(t, r.VAT.TaxPayable.IsZero())
	assert.True(t, r.VAT.CreditCarryForward.IsZero())
	assert.True(t, r.VAT.RetentionBalanceForward.IsZero())
	assert.True(t, r.VAT.TotalOutputTax.IsZero())
}

func TestSettle_ContinuidadDelArrastre(t *testing.T) {
	march, _ := entity.NewPeriod(2024, time.March)

	// Marzo: crédito mayor que débito y retenciones sin aplicar.
	m, err := fiscal.Settle(fiscal.SettlementInput{
		Sales:        []entity.FiscalDocument{sale(entity.TxGoods, "1000", "0", "120")},
		Purchases:    []entity.FiscalDocument{purchase(entity.TxGoods, "2000", "0", "240")},
		Certificates: []entity.RetentionCertificate{cert(entity.RetentionVAT, entity.CertificateStatusIssued, "25")},
	})
	require.NoError(t, err)
	committed := fiscal.NewPeriodSettlement("empresa-1", march, m)
	assert.Equal(t, "120.00", committed.CreditCarryForward.StringFixed(2))
	assert.Equal(t, "25.00", committed.RetentionBalanceForward.StringFixed(2))

	// Abril sin override toma los saldos de marzo.
	opening := fiscal.ResolveOpening(committed, fiscal.ManualOverrides{})
	a, err := fiscal.Settle(fiscal.SettlementInput{
		Sales:   []entity.FiscalDocument{sale(entity.TxGoods, "2000", "0", "240")},
		Opening: opening,
	})
	require.NoError(t, err)
	assert.Equal(t, "120.00", a.VAT.PriorCredit.StringFixed(2))
	assert.Equal(t, "25.00", a.VAT.PriorRetention.StringFixed(2))
	assert.Equal(t, "120.00", a.VAT.TotalInputTax.StringFixed(2))
	assert.Equal(t, "95.00", a.VAT.TaxPayable.StringFixed(2))

	april := fiscal.NewPeriodSettlement("empresa-1", march.Next(), a)
	assert.Equal(t, "25.00", april.RetentionCarryForward.StringFixed(2))
}
