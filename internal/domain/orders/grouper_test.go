package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExportConfig() ExportConfig {
	return ExportConfig{
		ExportID: 80,
		ColumnMapping: map[string]string{
			"IDPedido": ColOrderID,
			"Cantidad": ColQuantity,
		},
		FinalColumns: []string{ColOrderID, ColQuantity},
		SourceName:   "TestSource",
	}
}

func row(orderID int64, itemID int64, ean Value, qty Value) TypedRow {
	return TypedRow{
		ColOrderID:  IntValue(orderID),
		ColItemID:   IntValue(itemID),
		ColEAN:      ean,
		ColQuantity: qty,
	}
}

func TestGroupRows_GroupCountMatchesDistinctOrderIDs(t *testing.T) {
	rows := []TypedRow{
		row(100, 1, StringValue("111"), IntValue(2)),
		row(200, 2, StringValue("222"), IntValue(1)),
		row(100, 3, StringValue("333"), IntValue(5)),
		row(300, 4, NullValue(), IntValue(1)),
	}

	groups := GroupRows(rows, testExportConfig(), nil)

	require.Len(t, groups, 3)
	// First-appearance order is preserved.
	id0, _ := groups[0].OrderID.Int()
	id1, _ := groups[1].OrderID.Int()
	id2, _ := groups[2].OrderID.Int()
	assert.Equal(t, int64(100), id0)
	assert.Equal(t, int64(200), id1)
	assert.Equal(t, int64(300), id2)

	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, int64(7), groups[0].TotalQuantity)
	assert.Equal(t, int64(1), groups[1].TotalQuantity)
}

func TestGroupRows_SkusConcatenation(t *testing.T) {
	rows := []TypedRow{
		row(100, 1, StringValue("111"), IntValue(1)),
		row(100, 2, NullValue(), IntValue(1)),
		row(100, 3, StringValue("222"), IntValue(1)),
	}

	groups := GroupRows(rows, testExportConfig(), nil)

	require.Len(t, groups, 1)
	assert.Equal(t, "111, 222", groups[0].ConcatenatedSKUs)
}

func TestGroupRows_NumericEANsStringified(t *testing.T) {
	rows := []TypedRow{
		row(100, 1, IntValue(7791234567890), IntValue(1)),
		row(100, 2, IntValue(7790987654321), IntValue(1)),
	}

	groups := GroupRows(rows, testExportConfig(), nil)

	require.Len(t, groups, 1)
	assert.Equal(t, "7791234567890, 7790987654321", groups[0].ConcatenatedSKUs)
}

func TestGroupRows_UnparseableQuantitySkipped(t *testing.T) {
	rows := []TypedRow{
		row(100, 1, StringValue("111"), IntValue(3)),
		row(100, 2, StringValue("222"), StringValue("dos")),
		row(100, 3, StringValue("333"), StringValue("4.0")),
	}

	groups := GroupRows(rows, testExportConfig(), nil)

	require.Len(t, groups, 1)
	// "dos" is skipped, "4.0" parses permissively.
	assert.Equal(t, int64(7), groups[0].TotalQuantity)
	assert.Len(t, groups[0].Items, 3)
}

func TestGroupRows_HeaderFromFirstRow(t *testing.T) {
	first := TypedRow{
		ColOrderID:      IntValue(100),
		ColClientID:     IntValue(55),
		ColShippingType: StringValue("Envío a Domicilio"),
		ColAddress:      StringValue("Calle Falsa 123"),
		ColCustomerName: StringValue("Juan Pérez"),
		ColOrderRef:     StringValue("987654.0"),
		ColQuantity:     IntValue(1),
	}
	second := TypedRow{
		ColOrderID:      IntValue(100),
		ColShippingType: StringValue("otro valor ignorado"),
		ColQuantity:     IntValue(1),
	}

	groups := GroupRows([]TypedRow{first, second}, testExportConfig(), nil)

	require.Len(t, groups, 1)
	g := groups[0]
	shipping, _ := g.ShippingType.String()
	assert.Equal(t, "Envío a Domicilio", shipping)
	source, _ := g.Source.String()
	assert.Equal(t, "TestSource", source)
	// Missing header columns become null.
	assert.True(t, g.ShipDate.IsNull())
	// The numeric-as-text reference parses permissively.
	require.NotNil(t, g.LookupRef)
	assert.Equal(t, int64(987654), *g.LookupRef)
}

func TestGroupRows_BadLookupRefDisablesEnrichmentOnly(t *testing.T) {
	rows := []TypedRow{
		{
			ColOrderID:  IntValue(100),
			ColOrderRef: StringValue("no-numeric"),
			ColQuantity: IntValue(2),
		},
	}

	groups := GroupRows(rows, testExportConfig(), nil)

	require.Len(t, groups, 1)
	assert.Nil(t, groups[0].LookupRef)
	assert.Equal(t, int64(2), groups[0].TotalQuantity)
}

func TestGroupRows_RowsWithoutOrderIDSkipped(t *testing.T) {
	rows := []TypedRow{
		{ColOrderID: NullValue(), ColQuantity: IntValue(1)},
		row(100, 1, StringValue("111"), IntValue(1)),
	}

	groups := GroupRows(rows, testExportConfig(), nil)

	require.Len(t, groups, 1)
}

func TestGroupRows_DecimalQuantityTruncates(t *testing.T) {
	rows := []TypedRow{
		row(100, 1, StringValue("111"), DecimalValue(decimal.RequireFromString("2.5"))),
	}

	groups := GroupRows(rows, testExportConfig(), nil)

	require.Len(t, groups, 1)
	assert.Equal(t, int64(2), groups[0].TotalQuantity)
}
