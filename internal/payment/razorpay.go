package payment

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

// OrderCreator creates a pending payment intent for an amount in major
// currency units and returns the gateway's order handle as-is, so the
// client can drive the gateway checkout UI with whatever the gateway said.
type OrderCreator interface {
	CreateOrder(amount float64) (map[string]interface{}, error)
}

// MinorUnits converts a major-unit amount (rupees) to the gateway's minor
// unit (paise), rounding to the nearest integer.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// RazorpayGateway creates real orders through the Razorpay API.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateOrder asks Razorpay for an order over the given amount. Each order
// gets a unique receipt label. Errors are returned unwrapped for the caller
// to surface; there is no retry.
func (g *RazorpayGateway) CreateOrder(amount float64) (map[string]interface{}, error) {
	data := map[string]interface{}{
		"amount":   MinorUnits(amount),
		"currency": "INR",
		"receipt":  "receipt_" + uuid.NewString(),
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}
	return body, nil
}

// MockGateway stands in when Razorpay credentials are absent, so the whole
// checkout flow stays exercisable without real transactions. The handle is
// flagged with mock:true and the client simulates the gateway UI.
type MockGateway struct{}

func (MockGateway) CreateOrder(amount float64) (map[string]interface{}, error) {
	return map[string]interface{}{
		"id":       fmt.Sprintf("order_mock_%d", time.Now().UnixMilli()),
		"currency": "INR",
		"amount":   MinorUnits(amount),
		"mock":     true,
	}, nil
}
