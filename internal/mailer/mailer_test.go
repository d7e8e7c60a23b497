package mailer

import (
	"testing"

	"techmarket/internal/model"

	"github.com/stretchr/testify/assert"
)

func sampleDetails(gps *model.GPSPoint) model.OrderDetails {
	return model.OrderDetails{
		Amount:        2499,
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		Address:       "42 MG Road, Bengaluru",
		GPS:           gps,
		Items: []model.OrderItem{
			{Title: "UltraCharge 20000mAh Power Bank", Price: 2499, SellerName: "TechGear Official"},
		},
	}
}

func TestConfirmationBody(t *testing.T) {
	body := ConfirmationBody(sampleDetails(nil), "order_mock_123")

	assert.Contains(t, body, "Hi Asha,")
	assert.Contains(t, body, "₹2499")
	assert.Contains(t, body, "Order ID: order_mock_123")
	assert.Contains(t, body, "<li>UltraCharge 20000mAh Power Bank - ₹2499</li>")
	assert.Contains(t, body, "42 MG Road, Bengaluru")
}

func TestConfirmationBodyFractionalAmount(t *testing.T) {
	d := sampleDetails(nil)
	d.Amount = 499.5
	body := ConfirmationBody(d, "order_1")
	assert.Contains(t, body, "₹499.5")
}

func TestAdminAlertBodyWithGPS(t *testing.T) {
	gps := &model.GPSPoint{Latitude: 12.9716, Longitude: 77.5946}
	body := AdminAlertBody(sampleDetails(gps), "pay_abc")

	assert.Contains(t, body, "https://www.google.com/maps?q=12.9716,77.5946")
	assert.Contains(t, body, "12.9716, 77.5946")
	assert.Contains(t, body, "Payment ID:</strong> pay_abc")
	assert.Contains(t, body, "(Sold by: TechGear Official)")
}

func TestAdminAlertBodyWithoutGPS(t *testing.T) {
	body := AdminAlertBody(sampleDetails(nil), "pay_abc")

	assert.Contains(t, body, `href="Not provided"`)
	assert.Contains(t, body, "Coordinates:</strong> N/A")
}

func TestAdminRecipientFallsBackToSMTPUser(t *testing.T) {
	m := New("smtp.example.com", 587, "owner@example.com", "secret", "", "")
	assert.Equal(t, "owner@example.com", m.adminRecipient())

	m = New("smtp.example.com", 587, "owner@example.com", "secret", "", "alerts@example.com")
	assert.Equal(t, "alerts@example.com", m.adminRecipient())
}
