package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarshalGPS(t *testing.T) {
	// Absent coordinates serialize as the literal "null", matching what the
	// column has always held for orders without a shared location.
	assert.Equal(t, "null", MarshalGPS(nil))

	got := MarshalGPS(&GPSPoint{Latitude: 12.9716, Longitude: 77.5946})
	assert.JSONEq(t, `{"latitude":12.9716,"longitude":77.5946}`, got)
}

func TestMarshalItems(t *testing.T) {
	assert.Equal(t, "null", MarshalItems(nil))

	got := MarshalItems([]OrderItem{{ID: 3, Title: "ProBook X1 Carbon", Price: 124999, SellerName: "LaptopWorld"}})
	assert.Contains(t, got, `"title":"ProBook X1 Carbon"`)
	assert.Contains(t, got, `"seller_name":"LaptopWorld"`)
}
