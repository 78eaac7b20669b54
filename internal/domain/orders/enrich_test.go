package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func TestEnrich_ExternalRecordWins(t *testing.T) {
	g := &GroupedOrder{
		OrderHeader: OrderHeader{
			RawAddress:   StringValue("Av. Siempreviva 742 Tel:+5491122334455 (1406) Flores CABA"),
			CustomerName: StringValue("Juan Pérez"),
		},
	}
	ext := &ExternalOrder{
		ID:     int64Ptr(4451),
		Number: int64Ptr(1022),
		ShippingAddress: &ShippingAddress{
			Phone:    strPtr("+5491199998888"),
			Address:  strPtr("Av. Corrientes"),
			Number:   strPtr("1234"),
			Floor:    strPtr("3B"),
			Zipcode:  strPtr("1043"),
			City:     strPtr("San Nicolás"),
			Locality: strPtr("San Nicolás"),
			Province: strPtr("Capital Federal"),
			Country:  strPtr("AR"),
			Name:     strPtr("María López"),
		},
	}

	Enrich(g, ext)

	require.NotNil(t, g.StreetAddress)
	assert.Equal(t, "Av. Corrientes 1234 3B", *g.StreetAddress)
	assert.Equal(t, "+5491199998888", *g.RecipientPhone)
	assert.Equal(t, "1043", *g.PostalCode)
	assert.Equal(t, "San Nicolás", *g.Neighborhood)
	assert.Equal(t, "Capital Federal", *g.Province)
	assert.Equal(t, "AR", *g.Country)
	assert.Equal(t, "María López", *g.RecipientName)
	assert.Equal(t, int64(4451), *g.ExternalOrderID)
	assert.Equal(t, int64(1022), *g.ExternalOrderNumber)
}

func TestEnrich_ComposedStreetSkipsMissingParts(t *testing.T) {
	g := &GroupedOrder{}
	ext := &ExternalOrder{
		ShippingAddress: &ShippingAddress{
			Address: strPtr("Av. Corrientes"),
			Number:  strPtr("1234"),
		},
	}

	Enrich(g, ext)

	require.NotNil(t, g.StreetAddress)
	assert.Equal(t, "Av. Corrientes 1234", *g.StreetAddress)
}

func TestEnrich_FallbackWhenLookupMissed(t *testing.T) {
	g := &GroupedOrder{
		OrderHeader: OrderHeader{
			RawAddress:   StringValue("Av. Siempreviva 742 Tel:+5491122334455 (1406) Flores CABA"),
			CustomerName: StringValue("Juan Pérez"),
		},
	}

	Enrich(g, nil)

	require.NotNil(t, g.RecipientPhone)
	assert.Equal(t, "+5491122334455", *g.RecipientPhone)
	assert.Equal(t, "Av. Siempreviva 742", *g.StreetAddress)
	assert.Equal(t, "1406", *g.PostalCode)
	assert.Equal(t, "Flores", *g.Neighborhood)
	assert.Equal(t, "Flores", *g.Locality)
	require.NotNil(t, g.Province)
	assert.Equal(t, "CABA", *g.Province)
	assert.Nil(t, g.Country)
	require.NotNil(t, g.RecipientName)
	assert.Equal(t, "Juan Pérez", *g.RecipientName)
	assert.Nil(t, g.ExternalOrderID)
}

func TestEnrich_FallbackWhenRecordHasNoShippingAddress(t *testing.T) {
	g := &GroupedOrder{
		OrderHeader: OrderHeader{
			RawAddress: StringValue("Calle Falsa 123, Springfield"),
		},
	}

	Enrich(g, &ExternalOrder{ID: int64Ptr(1)})

	require.NotNil(t, g.Neighborhood)
	assert.Equal(t, "Springfield", *g.Neighborhood)
	assert.Nil(t, g.Province)
	// No customer name on the order leaves the recipient unset.
	assert.Nil(t, g.RecipientName)
}
