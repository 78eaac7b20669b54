package orders

import "strings"

// Enrich populates the order's destination fields. A usable external lookup
// record wins outright; otherwise the raw export address is decomposed by the
// fallback parser and the recipient name falls back to the order's plain
// customer name.
func Enrich(g *GroupedOrder, ext *ExternalOrder) {
	if ext.Usable() {
		mergeExternal(&g.OrderHeader, ext)
		return
	}
	applyFallback(&g.OrderHeader)
}

func mergeExternal(h *OrderHeader, ext *ExternalOrder) {
	addr := ext.ShippingAddress

	h.RecipientPhone = addr.Phone
	street := composeStreet(addr.Address, addr.Number, addr.Floor)
	h.StreetAddress = &street
	h.PostalCode = addr.Zipcode
	h.Neighborhood = addr.City
	h.Locality = addr.Locality
	h.Province = addr.Province
	h.Country = addr.Country
	h.RecipientName = addr.Name
	h.ExternalOrderID = ext.ID
	h.ExternalOrderNumber = ext.Number
}

func applyFallback(h *OrderHeader) {
	fa := ParseFallbackAddress(h.RawAddress.Text())

	h.RecipientPhone = &fa.Phone
	h.StreetAddress = &fa.Street
	h.PostalCode = &fa.PostalCode
	h.Neighborhood = &fa.Neighborhood
	h.Locality = &fa.Locality
	h.Province = fa.Province
	h.Country = nil
	if !h.CustomerName.IsNull() {
		name := h.CustomerName.Text()
		h.RecipientName = &name
	}
}

// composeStreet joins the non-empty address parts with single spaces.
func composeStreet(parts ...*string) string {
	var present []string
	for _, p := range parts {
		if p != nil && *p != "" {
			present = append(present, *p)
		}
	}
	return strings.TrimSpace(strings.Join(present, " "))
}
