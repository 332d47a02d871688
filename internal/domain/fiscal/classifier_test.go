package fiscal_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/cierre-fiscal/internal/domain"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/jhoicas/cierre-fiscal/internal/domain/fiscal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Renglones(t *testing.T) {
	tests := []struct {
		name     string
		doc      entity.FiscalDocument
		wantCode fiscal.CategoryCode
		wantBase string
		wantTax  string
	}{
		{"venta de bienes", sale(entity.TxGoods, "1000", "0", "120"), fiscal.SalesGoods, "1000.00", "120.00"},
		{"venta de servicios", sale(entity.TxServices, "0", "500", "60"), fiscal.SalesServices, "500.00", "60.00"},
		{"nota de crédito invierte signo", withType(sale(entity.TxGoods, "400", "0", "48"), entity.DocTypeCreditNote), fiscal.SalesGoods, "-400.00", "-48.00"},
		{"exportación sin IVA no es exenta", sale(entity.TxExport, "2000", "0", "0"), fiscal.SalesExports, "2000.00", "0.00"},
		{"bienes con IVA cero es exento", sale(entity.TxGoods, "300", "0", "0"), fiscal.SalesExempt, "300.00", "0.00"},
		{"recibo es exento", withType(sale(entity.TxServices, "0", "250", "30"), entity.DocTypeReceipt), fiscal.SalesExempt, "280.00", "0.00"},
		{"categoría exenta", purchase(entity.TxExempt, "90", "0", "0"), fiscal.PurchaseExempt, "90.00", "0.00"},
		{"factura de pequeño contribuyente capturada", withType(purchase(entity.TxGoods, "100", "0", "0"), entity.DocTypeSmallTaxpayerInvoice), fiscal.PurchaseSmallTaxpayer, "100.00", "0.00"},
		{"importación CA", purchase(entity.TxImportsRegional, "1000", "0", "120"), fiscal.PurchaseImportsRegional, "1000.00", "120.00"},
		{"importación en ventas cae en otras", sale(entity.TxImportsRegional, "100", "0", "12"), fiscal.SalesOther, "100.00", "12.00"},
		{"sin derecho a crédito solo base", purchase(entity.TxNoCreditRight, "100", "0", "12"), fiscal.PurchaseNoCreditRight, "112.00", "0.00"},
		{"combustibles", purchase(entity.TxFuels, "500", "0", "60"), fiscal.PurchaseFuels, "500.00", "60.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := tt.doc
			allocs, err := fiscal.Classify(&doc)
			require.NoError(t, err)
			require.Len(t, allocs, 1)
			assert.Equal(t, tt.wantCode, allocs[0].Category)
			assert.Equal(t, tt.wantBase, allocs[0].Base.StringFixed(2))
			assert.Equal(t, tt.wantTax, allocs[0].Tax.StringFixed(2))
		})
	}
}

func TestClassify_MixtoSeProrrateaConTasaEstatutaria(t *testing.T) {
	// El IVA del documento (999) se ignora; se recalcula por porción.
	doc := sale(entity.TxGoodsAndServices, "1000", "250.55", "999")

	allocs, err := fiscal.Classify(&doc)
	require.NoError(t, err)
	require.Len(t, allocs, 2)

	assert.Equal(t, fiscal.SalesGoods, allocs[0].Category)
	assert.Equal(t, "1000.00", allocs[0].Base.StringFixed(2))
	assert.Equal(t, "120.00", allocs[0].Tax.StringFixed(2))

	assert.Equal(t, fiscal.SalesServices, allocs[1].Category)
	assert.Equal(t, "250.55", allocs[1].Base.StringFixed(2))
	assert.Equal(t, "30.07", allocs[1].Tax.StringFixed(2))
}

func TestClassify_MixtoCorrectivo(t *testing.T) {
	doc := withType(purchase(entity.TxGoodsAndServices, "100", "100", "24"), entity.DocTypeCreditMemo)

	allocs, err := fiscal.Classify(&doc)
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	assert.Equal(t, "-12.00", allocs[0].Tax.StringFixed(2))
	assert.Equal(t, "-12.00", allocs[1].Tax.StringFixed(2))
	assert.Equal(t, "-100.00", allocs[1].Base.StringFixed(2))
}

func TestClassify_AnuladoNoAporta(t *testing.T) {
	doc := voided(sale(entity.TxGoods, "1000", "0", "120"))

	allocs, err := fiscal.Classify(&doc)
	require.NoError(t, err)
	assert.Empty(t, allocs)
	assert.True(t, fiscal.SignedBase(&doc).IsZero())
	assert.True(t, fiscal.SignedOtherLevies(&doc).IsZero())
}

func TestClassify_DocumentoInvalido(t *testing.T) {
	negativo := sale(entity.TxGoods, "100", "0", "12")
	negativo.TotalAmount = dec("-1")

	desconocida := sale(entity.TransactionCategory("CRIPTO"), "100", "0", "12")
	tipo := withType(sale(entity.TxGoods, "100", "0", "12"), entity.DocumentType("XXXX"))
	direccion := sale(entity.TxGoods, "100", "0", "12")
	direccion.Direction = entity.Direction("transfer")

	for name, doc := range map[string]entity.FiscalDocument{
		"total negativo":        negativo,
		"categoría desconocida": desconocida,
		"tipo desconocido":      tipo,
		"dirección desconocida": direccion,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := fiscal.Classify(&doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidDocument))
			var ide *domain.InvalidDocumentError
			require.True(t, errors.As(err, &ide))
			assert.Equal(t, doc.ID, ide.DocumentID)
		})
	}
}

func TestValidateDocuments_AgrupaErrores(t *testing.T) {
	a := sale(entity.TransactionCategory("X"), "1", "0", "0")
	b := sale(entity.TxGoods, "1", "0", "0")
	c := sale(entity.TxGoods, "1", "0", "0")
	c.GoodsBase = dec("-5")

	err := fiscal.ValidateDocuments([]entity.FiscalDocument{a, b, c})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	assert.Contains(t, err.Error(), a.ID)
	assert.Contains(t, err.Error(), c.ID)
	assert.NotContains(t, err.Error(), b.ID+":")
}

func TestSignedOtherLevies(t *testing.T) {
	doc := sale(entity.TxFuels, "1000", "0", "120")
	doc.Levies.Fuel = dec("45.50")
	doc.Levies.MunicipalRate = dec("4.50")
	assert.Equal(t, "50.00", fiscal.SignedOtherLevies(&doc).StringFixed(2))

	nc := withType(doc, entity.DocTypeCreditNote)
	assert.Equal(t, "-50.00", fiscal.SignedOtherLevies(&nc).StringFixed(2))
}

func TestTaxonomy_TablaUnica(t *testing.T) {
	for _, dir := range []entity.Direction{entity.DirectionSale, entity.DirectionPurchase} {
		rows := fiscal.Taxonomy(dir)
		require.NotEmpty(t, rows)

		seen := map[fiscal.CategoryCode]bool{}
		exempt, fallback := 0, 0
		for _, c := range rows {
			assert.False(t, seen[c.Code], "código repetido %s", c.Code)
			seen[c.Code] = true
			assert.Equal(t, dir, c.Direction)
			if c.Exempt {
				exempt++
			}
			if c.Fallback {
				fallback++
			}
		}
		assert.Equal(t, 1, exempt, "un solo renglón exento por dirección")
		assert.Equal(t, 1, fallback, "un solo renglón otras por dirección")
	}
	assert.Nil(t, fiscal.Taxonomy(entity.Direction("x")))

	// La copia devuelta no altera la tabla.
	rows := fiscal.Taxonomy(entity.DirectionSale)
	rows[0].Label = "modificado"
	assert.NotEqual(t, "modificado", fiscal.Taxonomy(entity.DirectionSale)[0].Label)
}

func TestCategory_ExcluyePequenoContribuyente(t *testing.T) {
	doc := withType(sale(entity.TxGoods, "100", "0", "0"), entity.DocTypeSmallTaxpayerExchange)
	for _, c := range fiscal.Taxonomy(entity.DirectionSale) {
		if c.Code == fiscal.SalesGoods {
			assert.False(t, c.Accepts(&doc))
		}
		if c.Code == fiscal.SalesSmallTaxpayer {
			assert.True(t, c.Accepts(&doc))
		}
	}
}
