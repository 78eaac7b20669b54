package ecommerce

// tiendanubeOrder is the slice of the store API's order payload we care
// about. Everything is optional: the API omits fields freely depending on
// the order's state and sales channel.
type tiendanubeOrder struct {
	ID              *int64                     `json:"id"`
	Number          *int64                     `json:"number"`
	ShippingAddress *tiendanubeShippingAddress `json:"shipping_address"`
}

type tiendanubeShippingAddress struct {
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Number   *string `json:"number"`
	Floor    *string `json:"floor"`
	Zipcode  *string `json:"zipcode"`
	City     *string `json:"city"`
	Locality *string `json:"locality"`
	Province *string `json:"province"`
	Country  *string `json:"country"`
	Name     *string `json:"name"`
}
