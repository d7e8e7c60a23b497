package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(249900), MinorUnits(2499))
	assert.Equal(t, int64(49950), MinorUnits(499.5))
	assert.Equal(t, int64(100), MinorUnits(0.999)) // rounds to nearest paise
	assert.Equal(t, int64(0), MinorUnits(0))
	assert.Equal(t, int64(-10000), MinorUnits(-100))
}

func TestMockGatewayHandle(t *testing.T) {
	body, err := MockGateway{}.CreateOrder(499.5)
	require.NoError(t, err)

	id, ok := body["id"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(id, "order_mock_"))
	assert.Equal(t, "INR", body["currency"])
	assert.Equal(t, int64(49950), body["amount"])
	assert.Equal(t, true, body["mock"])
}

func TestMockGatewayPassesNonPositiveAmounts(t *testing.T) {
	// The gateway layer applies no amount validation; zero and negative
	// amounts convert and pass through.
	body, err := MockGateway{}.CreateOrder(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), body["amount"])

	body, err = MockGateway{}.CreateOrder(-10)
	require.NoError(t, err)
	assert.Equal(t, int64(-1000), body["amount"])
}
