package erp

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatch/backend/internal/domain/orders"
)

func TestExtractRawRows(t *testing.T) {
	t.Run("plain dataset", func(t *testing.T) {
		inner := `<NewDataSet>
		  <Table><IDPedido>1001</IDPedido><Cantidad>2</Cantidad></Table>
		  <Table><IDPedido>1002</IDPedido><Cantidad>1</Cantidad></Table>
		</NewDataSet>`

		rows, err := extractRawRows(inner)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "1001", rows[0]["IDPedido"])
		assert.Equal(t, "1", rows[1]["Cantidad"])
	})

	t.Run("namespaced dataset", func(t *testing.T) {
		inner := `<NewDataSet xmlns="urn:schemas-microsoft-com:xml-msdata">
		  <Table><IDPedido>1001</IDPedido></Table>
		</NewDataSet>`

		rows, err := extractRawRows(inner)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "1001", rows[0]["IDPedido"])
	})

	t.Run("rows without container", func(t *testing.T) {
		inner := `<Export><Table><IDPedido>42</IDPedido></Table></Export>`

		rows, err := extractRawRows(inner)
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})

	t.Run("rows outside a closed container are ignored", func(t *testing.T) {
		inner := `<Export>
		  <NewDataSet>
		    <Table><IDPedido>1001</IDPedido></Table>
		    <Table><IDPedido>1002</IDPedido></Table>
		  </NewDataSet>
		  <Table><IDPedido>9999</IDPedido></Table>
		</Export>`

		rows, err := extractRawRows(inner)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "1001", rows[0]["IDPedido"])
		assert.Equal(t, "1002", rows[1]["IDPedido"])
	})

	t.Run("nested wrappers inside the container", func(t *testing.T) {
		inner := `<Export>
		  <NewDataSet>
		    <diffgram><DocumentElement>
		      <Table><IDPedido>7</IDPedido></Table>
		    </DocumentElement></diffgram>
		  </NewDataSet>
		  <Table><IDPedido>9999</IDPedido></Table>
		</Export>`

		rows, err := extractRawRows(inner)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "7", rows[0]["IDPedido"])
	})

	t.Run("empty dataset", func(t *testing.T) {
		_, err := extractRawRows(`<NewDataSet></NewDataSet>`)
		assert.True(t, errors.Is(err, orders.ErrNoRows))
	})

	t.Run("empty cells survive as empty strings", func(t *testing.T) {
		inner := `<NewDataSet><Table><IDPedido>1</IDPedido><Observaciones/></Table></NewDataSet>`

		rows, err := extractRawRows(inner)
		require.NoError(t, err)
		text, ok := rows[0]["Observaciones"]
		assert.True(t, ok)
		assert.Equal(t, "", text)
	})
}

func TestMapColumns(t *testing.T) {
	raw := []rawRow{{
		"IDPedido":          "1001",
		"Tipo_x0020_Envio":  "Domicilio",
		"ColumnaIrrelevante": "x",
	}}
	mapping := map[string]string{
		"IDPedido":         orders.ColOrderID,
		"Tipo_x0020_Envio": orders.ColShippingType,
	}

	mapped := mapColumns(raw, mapping)
	require.Len(t, mapped, 1)
	assert.Equal(t, "1001", mapped[0][orders.ColOrderID])
	assert.Equal(t, "Domicilio", mapped[0][orders.ColShippingType])
	_, ok := mapped[0]["ColumnaIrrelevante"]
	assert.False(t, ok)
}

func TestIsNullText(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n", "NaN", "nan", "None", "null", " NaN "} {
		assert.True(t, isNullText(text), "%q should be null", text)
	}
	for _, text := range []string{"0", "abc", "Nan"} {
		assert.False(t, isNullText(text), "%q should not be null", text)
	}
}

func TestCoerceRows(t *testing.T) {
	final := []string{orders.ColOrderID, orders.ColQuantity, orders.ColShipDate, orders.ColNotes}

	t.Run("integral column collapses to int", func(t *testing.T) {
		mapped := []rawRow{
			{orders.ColQuantity: "2"},
			{orders.ColQuantity: "3.0"},
		}

		typed := coerceRows(mapped, final)
		n, ok := typed[0][orders.ColQuantity].Int()
		require.True(t, ok)
		assert.Equal(t, int64(2), n)
		n, ok = typed[1][orders.ColQuantity].Int()
		require.True(t, ok)
		assert.Equal(t, int64(3), n)
	})

	t.Run("one fractional value keeps the column decimal", func(t *testing.T) {
		mapped := []rawRow{
			{orders.ColQuantity: "2"},
			{orders.ColQuantity: "2.5"},
		}

		typed := coerceRows(mapped, final)
		assert.Equal(t, orders.KindDecimal, typed[0][orders.ColQuantity].Kind())
		d, ok := typed[1][orders.ColQuantity].Decimal()
		require.True(t, ok)
		assert.Equal(t, "2.5", d.String())
	})

	t.Run("unparseable numeric cells go null without breaking the column", func(t *testing.T) {
		mapped := []rawRow{
			{orders.ColQuantity: "abc"},
			{orders.ColQuantity: "4"},
		}

		typed := coerceRows(mapped, final)
		assert.True(t, typed[0][orders.ColQuantity].IsNull())
		n, ok := typed[1][orders.ColQuantity].Int()
		require.True(t, ok)
		assert.Equal(t, int64(4), n)
	})

	t.Run("null sentinels become null in every column kind", func(t *testing.T) {
		mapped := []rawRow{{
			orders.ColQuantity: "NaN",
			orders.ColShipDate: "None",
			orders.ColNotes:    "   ",
		}}

		typed := coerceRows(mapped, final)
		assert.True(t, typed[0][orders.ColQuantity].IsNull())
		assert.True(t, typed[0][orders.ColShipDate].IsNull())
		assert.True(t, typed[0][orders.ColNotes].IsNull())
	})

	t.Run("date column parses common layouts", func(t *testing.T) {
		mapped := []rawRow{
			{orders.ColShipDate: "2026-03-14T10:30:00"},
			{orders.ColShipDate: "14/03/2026"},
			{orders.ColShipDate: "not a date"},
		}

		typed := coerceRows(mapped, final)
		ts, ok := typed[0][orders.ColShipDate].Date()
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC), ts)
		ts, ok = typed[1][orders.ColShipDate].Date()
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), ts)
		assert.True(t, typed[2][orders.ColShipDate].IsNull())
	})

	t.Run("free-text columns are never coerced", func(t *testing.T) {
		mapped := []rawRow{{orders.ColNotes: "123"}}

		typed := coerceRows(mapped, final)
		s, ok := typed[0][orders.ColNotes].String()
		require.True(t, ok)
		assert.Equal(t, "123", s)
	})

	t.Run("missing columns materialize as null", func(t *testing.T) {
		mapped := []rawRow{{orders.ColOrderID: "1"}}

		typed := coerceRows(mapped, final)
		assert.True(t, typed[0][orders.ColQuantity].IsNull())
		assert.True(t, typed[0][orders.ColNotes].IsNull())
	})
}
