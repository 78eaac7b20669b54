package orders

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_CoerceInt(t *testing.T) {
	tests := []struct {
		name   string
		value  Value
		want   int64
		wantOK bool
	}{
		{"int passes through", IntValue(42), 42, true},
		{"decimal truncates", DecimalValue(decimal.RequireFromString("42.9")), 42, true},
		{"numeric text", StringValue("42"), 42, true},
		{"float text truncates", StringValue("987654.0"), 987654, true},
		{"non-numeric text", StringValue("abc"), 0, false},
		{"null", NullValue(), 0, false},
		{"date", DateValue(time.Now()), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.value.CoerceInt()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	date := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"null", NullValue(), `null`},
		{"string", StringValue("hola"), `"hola"`},
		{"int as number", IntValue(7), `7`},
		{"decimal as number", DecimalValue(decimal.RequireFromString("2.5")), `2.5`},
		{"date as rfc3339", DateValue(date), `"2026-03-14T10:30:00Z"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestValue_ZeroValueIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
}

func TestTypedRow_GetMissingColumn(t *testing.T) {
	r := TypedRow{ColOrderID: IntValue(1)}
	assert.True(t, r.Get("no-such-column").IsNull())
}
