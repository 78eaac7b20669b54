package orders

import (
	"regexp"
	"strings"
)

// FallbackAddress is the decomposition of a free-text shipping address. It is
// used when the enrichment lookup has no usable record; captures that did not
// match stay empty rather than nil to mirror the legacy records, except for
// the province which is only set on a confirmed match.
type FallbackAddress struct {
	Phone        string
	PostalCode   string
	Street       string
	Neighborhood string
	Locality     string
	Province     *string
}

// provincePattern is the closed list of province names recognized at the end
// of an address line.
const provincePattern = `(?:Buenos\s*Aires|CABA|Capital\s*Federal|Córdoba|Santa\s*Fe|Mendoza|Tucumán|Salta|Chaco|Corrientes|Entre\s*Ríos|Misiones|Santiago\s*del\s*Estero|Jujuy|San\s*Juan|Río\s*Negro|Neuquén|Formosa|Chubut|San\s*Luis|Catamarca|La\s*Rioja|La\s*Pampa|Santa\s*Cruz|Tierra\s*del\s*Fuego)`

var (
	phoneRe            = regexp.MustCompile(`Tel:\+(\d+)`)
	phoneStripRe       = regexp.MustCompile(`Tel:\+\d+`)
	postalCodeRe       = regexp.MustCompile(`\((\d{4,})\)`)
	postalCodeStripRe  = regexp.MustCompile(`\(\d{4,}\)`)
	// The locality capture excludes commas and digits so the match starts
	// after the street numbering instead of swallowing the whole line.
	localityProvinceRe = regexp.MustCompile(`(?i)([^,\d]+?)\s+(` + provincePattern + `)$`)
	whitespaceRe       = regexp.MustCompile(`\s+`)
)

// extractPhone matches "Tel:+<digits>" anywhere in the remainder and strips
// every occurrence of the pattern from it.
func extractPhone(remainder string) (phone, rest string, ok bool) {
	m := phoneRe.FindStringSubmatch(remainder)
	if m == nil {
		return "", remainder, false
	}
	return "+" + m[1], strings.TrimSpace(phoneStripRe.ReplaceAllString(remainder, "")), true
}

// extractPostalCode matches a parenthesized run of four or more digits.
func extractPostalCode(remainder string) (code, rest string, ok bool) {
	m := postalCodeRe.FindStringSubmatch(remainder)
	if m == nil {
		return "", remainder, false
	}
	return m[1], strings.TrimSpace(postalCodeStripRe.ReplaceAllString(remainder, "")), true
}

// extractLocalityProvince matches, at the end of the remainder, a locality
// name followed by one of the known province names.
func extractLocalityProvince(remainder string) (locality, province, rest string, ok bool) {
	loc := localityProvinceRe.FindStringSubmatchIndex(remainder)
	if loc == nil {
		return "", "", remainder, false
	}
	m := localityProvinceRe.FindStringSubmatch(remainder)
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]),
		strings.TrimSpace(remainder[:loc[0]]), true
}

// extractTrailingNeighborhood treats the text after the last comma as the
// neighborhood and strips it from the end of the remainder.
func extractTrailingNeighborhood(remainder string) (neighborhood, rest string) {
	parts := strings.Split(remainder, ",")
	neighborhood = strings.TrimSpace(parts[len(parts)-1])
	if neighborhood != "" {
		stripRe := regexp.MustCompile(regexp.QuoteMeta(neighborhood) + `\s*$`)
		remainder = stripRe.ReplaceAllString(remainder, "")
	}
	return neighborhood, strings.TrimSpace(remainder)
}

// ParseFallbackAddress decomposes a free-text shipping address with ordered,
// independent extraction passes: phone, postal code, trailing
// locality+province (falling back to the text after the last comma), and
// whatever remains becomes the street with whitespace collapsed.
func ParseFallbackAddress(raw string) FallbackAddress {
	var fa FallbackAddress
	remainder := raw

	fa.Phone, remainder, _ = extractPhone(remainder)
	fa.PostalCode, remainder, _ = extractPostalCode(remainder)

	if locality, province, rest, ok := extractLocalityProvince(remainder); ok {
		fa.Locality = locality
		fa.Province = &province
		fa.Neighborhood = locality
		remainder = rest
	} else {
		fa.Neighborhood, remainder = extractTrailingNeighborhood(remainder)
		fa.Locality = fa.Neighborhood
	}

	fa.Street = strings.TrimSpace(whitespaceRe.ReplaceAllString(remainder, " "))
	return fa
}
