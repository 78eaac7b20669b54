package orders

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies the concrete type carried by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindDecimal
	KindDate
)

// Value is a typed export column value. Export rows arrive as text and are
// coerced column by column, so a single row mixes strings, integers, decimals,
// dates and nulls.
type Value struct {
	kind Kind
	str  string
	num  int64
	dec  decimal.Decimal
	date time.Time
}

// NullValue returns the null Value. The zero Value is also null.
func NullValue() Value {
	return Value{kind: KindNull}
}

// StringValue returns a Value holding s.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// IntValue returns a Value holding n.
func IntValue(n int64) Value {
	return Value{kind: KindInt, num: n}
}

// DecimalValue returns a Value holding d.
func DecimalValue(d decimal.Decimal) Value {
	return Value{kind: KindDecimal, dec: d}
}

// DateValue returns a Value holding t.
func DateValue(t time.Time) Value {
	return Value{kind: KindDate, date: t}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// String returns the string payload. The second return is false when the
// value is not a string.
func (v Value) String() (string, bool) {
	return v.str, v.kind == KindString
}

// Int returns the integer payload. The second return is false when the value
// is not an integer.
func (v Value) Int() (int64, bool) {
	return v.num, v.kind == KindInt
}

// Decimal returns the decimal payload. The second return is false when the
// value is not a decimal.
func (v Value) Decimal() (decimal.Decimal, bool) {
	return v.dec, v.kind == KindDecimal
}

// Date returns the date payload. The second return is false when the value is
// not a date.
func (v Value) Date() (time.Time, bool) {
	return v.date, v.kind == KindDate
}

// CoerceInt parses the value as an integer the way the legacy export data
// requires: integers pass through, decimals truncate, and numeric text is
// parsed via float so that values like "12345.0" still resolve. Null, dates
// and non-numeric text do not coerce.
func (v Value) CoerceInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.num, true
	case KindDecimal:
		return v.dec.IntPart(), true
	case KindString:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

// Text returns the textual form of the value, or the empty string for null.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindDecimal:
		return v.dec.String()
	case KindDate:
		return v.date.Format(time.RFC3339)
	default:
		return ""
	}
}

// MarshalJSON encodes nulls as JSON null, numbers as JSON numbers and dates
// in RFC 3339, preserving the shape the reporting front end consumes.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindInt:
		return []byte(strconv.FormatInt(v.num, 10)), nil
	case KindDecimal:
		return []byte(v.dec.String()), nil
	case KindDate:
		return json.Marshal(v.date.Format(time.RFC3339))
	default:
		return nil, fmt.Errorf("orders: unknown value kind %d", v.kind)
	}
}

// mapKey returns a stable grouping key for the value.
func (v Value) mapKey() string {
	return strconv.Itoa(int(v.kind)) + "|" + v.Text()
}

// TypedRow maps canonical column names to typed values.
type TypedRow map[string]Value

// Get returns the value for a column, or null when the column is absent.
func (r TypedRow) Get(column string) Value {
	if v, ok := r[column]; ok {
		return v
	}
	return NullValue()
}
