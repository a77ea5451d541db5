package orders_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/internal/domain/orders"
)

func TestParseProductList_FormatoLegado(t *testing.T) {
	res := orders.ParseProductList("Cerveja Pilsen 600ml (12x), Barril 50L (2x)")

	require.Len(t, res.Lines, 2)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, orders.LineRef{Name: "Cerveja Pilsen 600ml", Quantity: 12}, res.Lines[0])
	assert.Equal(t, orders.LineRef{Name: "Barril 50L", Quantity: 2}, res.Lines[1])
}

func TestParseProductList_SegmentosMalformadosVanASkipped(t *testing.T) {
	res := orders.ParseProductList("Cerveja (6x), sin cantidad, Gas CO2 (0x), Refrigerante (3x)")

	require.Len(t, res.Lines, 2)
	assert.Equal(t, "Cerveja", res.Lines[0].Name)
	assert.Equal(t, "Refrigerante", res.Lines[1].Name)
	// Lo no reconocido se reporta, nunca se pierde en silencio.
	assert.Equal(t, []string{"sin cantidad", "Gas CO2 (0x)"}, res.Skipped)
}

func TestParseProductList_NombreConParentesis(t *testing.T) {
	res := orders.ParseProductList("Chopp (Artesanal) Especial (4x)")

	require.Len(t, res.Lines, 1)
	assert.Equal(t, "Chopp (Artesanal) Especial", res.Lines[0].Name)
	assert.Equal(t, 4, res.Lines[0].Quantity)
}

func TestParseProductList_TextoVacio(t *testing.T) {
	res := orders.ParseProductList("")
	assert.Empty(t, res.Lines)
	assert.Empty(t, res.Skipped)
}

func TestFormatProductList_RoundTrip(t *testing.T) {
	lines := []orders.LineRef{
		{Name: "Cerveja Pilsen 600ml", Quantity: 12},
		{Name: "Barril 50L", Quantity: 2},
	}
	text := orders.FormatProductList(lines)
	assert.Equal(t, "Cerveja Pilsen 600ml (12x), Barril 50L (2x)", text)

	back := orders.ParseProductList(text)
	assert.Empty(t, back.Skipped)
	assert.Equal(t, lines, back.Lines)
}

func TestNormalizeName_AcentosYMayusculas(t *testing.T) {
	assert.Equal(t, "chopp artesanal ambar", orders.NormalizeName("Chopp Artesanal Âmbar"))
	assert.Equal(t, "agua com gas", orders.NormalizeName("  Água com Gás "))
	assert.Equal(t, orders.NormalizeName("CERVEJA"), orders.NormalizeName("cerveja"))
}
