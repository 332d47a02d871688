package fiscal_test

import (
	"math/rand"
	"testing"

	"github.com/jhoicas/cierre-fiscal/internal/domain"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/jhoicas/cierre-fiscal/internal/domain/fiscal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Signo: factura con IVA 100 y nota de crédito con IVA 40 en el mismo renglón
// deben dejar 60 en el renglón.
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregate_NotaDeCreditoResta(t *testing.T) {
	docs := []entity.FiscalDocument{
		sale(entity.TxGoods, "833.33", "0", "100"),
		withType(sale(entity.TxGoods, "333.33", "0", "40"), entity.DocTypeCreditNote),
	}

	table, err := fiscal.Aggregate(docs, entity.DirectionSale)
	require.NoError(t, err)

	goods, ok := table.Find(fiscal.SalesGoods)
	require.True(t, ok)
	assert.Equal(t, "60.00", goods.Tax.StringFixed(2))
	assert.Equal(t, "500.00", goods.Base.StringFixed(2))
	assert.Equal(t, 2, goods.Documents)
	assert.Equal(t, "60.00", table.Total().Tax.StringFixed(2))
}

func TestAggregate_RenglonesObligatoriosYOpcionales(t *testing.T) {
	table, err := fiscal.Aggregate(nil, entity.DirectionPurchase)
	require.NoError(t, err)

	codes := make([]fiscal.CategoryCode, 0, len(table.Rows))
	for _, r := range table.Rows {
		codes = append(codes, r.Category)
		assert.True(t, r.Base.IsZero())
		assert.True(t, r.Tax.IsZero())
	}
	assert.Equal(t, []fiscal.CategoryCode{
		fiscal.PurchaseGoods,
		fiscal.PurchaseServices,
		fiscal.PurchaseFuels,
		fiscal.PurchaseImportsRegional,
		fiscal.PurchaseImportsRestOfWorld,
		fiscal.PurchaseFixedAssets,
		fiscal.PurchaseSmallTaxpayer,
		fiscal.PurchaseExempt,
		fiscal.TotalCode,
	}, codes)
	assert.True(t, table.Rows[len(table.Rows)-1].Synthetic)

	// Un renglón opcional aparece solo cuando algo cae en él, en su posición fija.
	table, err = fiscal.Aggregate([]entity.FiscalDocument{
		purchase(entity.TxMedicines, "100", "0", "12"),
	}, entity.DirectionPurchase)
	require.NoError(t, err)
	assert.Equal(t, fiscal.PurchaseMedicines, table.Rows[3].Category)
	assert.Len(t, table.Categories(), 9)
}

func TestAggregate_IndependienteDelOrden(t *testing.T) {
	docs := []entity.FiscalDocument{
		sale(entity.TxGoods, "1000.10", "0", "120.01"),
		sale(entity.TxServices, "0", "333.33", "40.00"),
		sale(entity.TxGoodsAndServices, "100.05", "200.07", "36.01"),
		withType(sale(entity.TxServices, "0", "50", "6"), entity.DocTypeCreditNote),
		sale(entity.TxExport, "5000", "0", "0"),
		sale(entity.TxGoods, "10", "0", "0"),
		withType(sale(entity.TxGoods, "20", "0", "0"), entity.DocTypeSmallTaxpayerInvoice),
		voided(sale(entity.TxFuels, "900", "0", "108")),
		sale(entity.TxMedicines, "45.45", "0", "5.45"),
	}
	want, err := fiscal.Aggregate(docs, entity.DirectionSale)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := make([]entity.FiscalDocument, len(docs))
		copy(shuffled, docs)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := fiscal.Aggregate(shuffled, entity.DirectionSale)
		require.NoError(t, err)
		assert.Equal(t, snapshot(want), snapshot(got))
	}
}

func TestAggregate_AnuladosNoAportan(t *testing.T) {
	docs := []entity.FiscalDocument{
		voided(sale(entity.TxGoods, "1000", "0", "120")),
		voided(sale(entity.TxFuels, "500", "0", "60")),
		voided(withType(sale(entity.TxGoods, "10", "0", "1.2"), entity.DocTypeCreditNote)),
	}
	table, err := fiscal.Aggregate(docs, entity.DirectionSale)
	require.NoError(t, err)

	for _, r := range table.Rows {
		assert.True(t, r.Base.IsZero(), "renglón %s", r.Category)
		assert.True(t, r.Tax.IsZero(), "renglón %s", r.Category)
		assert.Zero(t, r.Documents)
	}
	_, ok := table.Find(fiscal.SalesFuels)
	assert.False(t, ok, "un renglón opcional sin documentos vigentes no aparece")
}

func TestAggregate_DireccionIncorrecta(t *testing.T) {
	_, err := fiscal.Aggregate([]entity.FiscalDocument{
		purchase(entity.TxGoods, "1", "0", "0.12"),
	}, entity.DirectionSale)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)

	_, err = fiscal.Aggregate(nil, entity.Direction("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAggregate_TotalSumaTodasLasFilas(t *testing.T) {
	docs := []entity.FiscalDocument{
		sale(entity.TxGoods, "100", "0", "12"),
		sale(entity.TxServices, "0", "200", "24"),
		sale(entity.TxExport, "300", "0", "0"),
	}
	table, err := fiscal.Aggregate(docs, entity.DirectionSale)
	require.NoError(t, err)

	total := table.Total()
	assert.Equal(t, "600.00", total.Base.StringFixed(2))
	assert.Equal(t, "36.00", total.Tax.StringFixed(2))
	assert.Equal(t, 3, total.Documents)
	assert.Equal(t, "36.00", table.TaxTotal().StringFixed(2))
}

func TestAggregate_MixtoCuentaUnaVezEnElTotal(t *testing.T) {
	docs := []entity.FiscalDocument{
		sale(entity.TxGoodsAndServices, "1000", "500", "180"),
	}
	table, err := fiscal.Aggregate(docs, entity.DirectionSale)
	require.NoError(t, err)

	goods, ok := table.Find(fiscal.SalesGoods)
	require.True(t, ok)
	services, ok := table.Find(fiscal.SalesServices)
	require.True(t, ok)
	assert.Equal(t, 1, goods.Documents)
	assert.Equal(t, 1, services.Documents)

	assert.Equal(t, 1, table.Total().Documents)
	assert.Equal(t, fiscal.Summarize(docs, entity.DirectionSale).Documents, table.Total().Documents)
	assert.Equal(t, "1500.00", table.Total().Base.StringFixed(2))
}

func TestSummarize(t *testing.T) {
	doc := sale(entity.TxFuels, "100", "0", "12")
	doc.Levies.Fuel = dec("4.70")
	nc := withType(sale(entity.TxGoods, "50", "0", "6"), entity.DocTypeCreditNote)

	s := fiscal.Summarize([]entity.FiscalDocument{
		doc,
		nc,
		voided(sale(entity.TxGoods, "1", "0", "0.12")),
		purchase(entity.TxGoods, "999", "0", "0"),
	}, entity.DirectionSale)

	assert.Equal(t, 1, s.Documents)
	assert.Equal(t, "112.00", s.DocumentsTotal.StringFixed(2))
	assert.Equal(t, 1, s.CreditNotes)
	assert.Equal(t, "56.00", s.CreditNotesTotal.StringFixed(2))
	assert.Equal(t, 1, s.Voided)
	assert.Equal(t, "4.70", s.OtherLevies.StringFixed(2))
}
