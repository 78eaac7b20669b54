package erp

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dispatch/backend/internal/domain/orders"
)

const (
	datasetElement = "NewDataSet"
	rowElement     = "Table"
)

// rawRow is a record as it appears in the inner document: child tag name
// to text content, before any renaming or typing.
type rawRow map[string]string

// extractRawRows parses the unwrapped inner document and returns one raw
// row per dataset record. The dataset container may or may not carry a
// namespace; when no container exists at all, row elements are taken from
// anywhere in the document.
func extractRawRows(inner string) ([]rawRow, error) {
	requireContainer := strings.Contains(inner, datasetElement)

	dec := xml.NewDecoder(strings.NewReader(inner))
	dec.Strict = false

	var rows []rawRow
	insideDataset := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: inner document: %v", orders.ErrMalformedResponse, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == datasetElement && insideDataset == 0:
				insideDataset = 1
			case t.Name.Local == rowElement && (!requireContainer || insideDataset > 0):
				// decodeRow consumes the row's end element, so the
				// container depth is untouched here.
				row, err := decodeRow(dec)
				if err != nil {
					return nil, fmt.Errorf("%w: row element: %v", orders.ErrMalformedResponse, err)
				}
				rows = append(rows, row)
			case insideDataset > 0:
				insideDataset++
			}
		case xml.EndElement:
			if insideDataset > 0 {
				insideDataset--
			}
		}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: dataset contains no records", orders.ErrNoRows)
	}
	return rows, nil
}

// decodeRow consumes tokens until the row's end element, collecting each
// direct child's text content.
func decodeRow(dec *xml.Decoder) (rawRow, error) {
	row := rawRow{}
	var (
		field string
		buf   strings.Builder
		depth int
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				field = t.Name.Local
				buf.Reset()
			}
		case xml.CharData:
			if depth == 1 {
				buf.Write(t)
			}
		case xml.EndElement:
			if depth == 0 {
				return row, nil
			}
			if depth == 1 {
				row[field] = buf.String()
			}
			depth--
		}
	}
}

// mapColumns renames raw columns to canonical names per the export's
// mapping and drops everything unmapped.
func mapColumns(raw []rawRow, mapping map[string]string) []rawRow {
	mapped := make([]rawRow, len(raw))
	for i, row := range raw {
		out := rawRow{}
		for source, canonical := range mapping {
			if text, ok := row[source]; ok {
				out[canonical] = text
			}
		}
		mapped[i] = out
	}
	return mapped
}

var nullSentinels = map[string]struct{}{
	"NaN": {}, "nan": {}, "None": {}, "null": {},
}

// isNullText reports whether a raw cell should be treated as absent:
// empty, whitespace-only, or one of the textual null markers the
// upstream emits.
func isNullText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	_, ok := nullSentinels[trimmed]
	return ok
}

func isDateColumn(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "fecha") || strings.Contains(lower, "date")
}

var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

func parseDate(text string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// coerceRows applies column-level typing over the whole mapped dataset.
// Free-text columns keep their strings; date columns parse or go null;
// every other column is numeric, and becomes integer only when all of its
// non-null values are integral.
func coerceRows(mapped []rawRow, finalColumns []string) []orders.TypedRow {
	columns := map[string]struct{}{}
	for _, name := range finalColumns {
		columns[name] = struct{}{}
	}
	for _, row := range mapped {
		for name := range row {
			columns[name] = struct{}{}
		}
	}

	typed := make([]orders.TypedRow, len(mapped))
	for i := range typed {
		typed[i] = orders.TypedRow{}
	}

	for name := range columns {
		switch {
		case orders.FreeTextColumns[name]:
			for i, row := range mapped {
				typed[i][name] = textValue(row, name)
			}
		case isDateColumn(name):
			for i, row := range mapped {
				typed[i][name] = dateValue(row, name)
			}
		default:
			coerceNumericColumn(mapped, typed, name)
		}
	}
	return typed
}

func textValue(row rawRow, name string) orders.Value {
	text, ok := row[name]
	if !ok || isNullText(text) {
		return orders.NullValue()
	}
	return orders.StringValue(text)
}

func dateValue(row rawRow, name string) orders.Value {
	text, ok := row[name]
	if !ok || isNullText(text) {
		return orders.NullValue()
	}
	if ts, ok := parseDate(strings.TrimSpace(text)); ok {
		return orders.DateValue(ts)
	}
	return orders.NullValue()
}

// coerceNumericColumn parses every non-null cell as a decimal, coercing
// unparseable cells to null, then collapses the column to integers when no
// surviving value has a fractional part.
func coerceNumericColumn(mapped []rawRow, typed []orders.TypedRow, name string) {
	parsed := make([]*decimal.Decimal, len(mapped))
	allIntegral := true
	for i, row := range mapped {
		text, ok := row[name]
		if !ok || isNullText(text) {
			continue
		}
		d, err := decimal.NewFromString(strings.TrimSpace(text))
		if err != nil {
			continue
		}
		parsed[i] = &d
		if !d.IsInteger() {
			allIntegral = false
		}
	}
	for i, d := range parsed {
		switch {
		case d == nil:
			typed[i][name] = orders.NullValue()
		case allIntegral:
			typed[i][name] = orders.IntValue(d.IntPart())
		default:
			typed[i][name] = orders.DecimalValue(*d)
		}
	}
}
