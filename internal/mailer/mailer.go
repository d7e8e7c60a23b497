package mailer

import (
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"techmarket/internal/model"
)

const defaultFrom = `"TechMarket" <noreply@techmarket.com>`

// Mailer sends order notifications through a configured SMTP relay. There is
// no queue and no retry: each send is one synchronous SMTP conversation and
// a failure is reported once to the caller.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	admin    string
}

func New(host string, port int, username, password, from, admin string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		admin:    admin,
	}
}

// SendOrderConfirmation mails the customer their order summary.
func (m *Mailer) SendOrderConfirmation(d model.OrderDetails, orderID string) error {
	return m.send(d.CustomerEmail, "Order Confirmation - TechMarket", ConfirmationBody(d, orderID))
}

// SendAdminAlert mails the store owner about a new order. Falls back to the
// SMTP user when no dedicated admin address is configured.
func (m *Mailer) SendAdminAlert(d model.OrderDetails, paymentID string) error {
	return m.send(m.adminRecipient(), "New Order Received!", AdminAlertBody(d, paymentID))
}

func (m *Mailer) adminRecipient() string {
	if m.admin != "" {
		return m.admin
	}
	return m.username
}

func (m *Mailer) send(to, subject, body string) error {
	from := m.from
	if from == "" {
		from = defaultFrom
	}

	msg := []byte(
		"From: " + from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.username, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// ConfirmationBody renders the customer-facing order confirmation.
func ConfirmationBody(d model.OrderDetails, orderID string) string {
	var items strings.Builder
	for _, it := range d.Items {
		fmt.Fprintf(&items, "<li>%s - ₹%s</li>", it.Title, formatAmount(it.Price))
	}
	return fmt.Sprintf(`
		<h1>Thank you for your order!</h1>
		<p>Hi %s,</p>
		<p>We have received your payment of ₹%s.</p>
		<p>Order ID: %s</p>
		<h3>Items:</h3>
		<ul>%s</ul>
		<p>We will ship your items to:</p>
		<p>%s</p>`,
		d.CustomerName, formatAmount(d.Amount), orderID, items.String(), d.Address)
}

// AdminAlertBody renders the store-owner alert, including a Google Maps link
// when the customer shared GPS coordinates.
func AdminAlertBody(d model.OrderDetails, paymentID string) string {
	gpsLink := "Not provided"
	coords := "N/A"
	if d.GPS != nil {
		gpsLink = fmt.Sprintf("https://www.google.com/maps?q=%v,%v", d.GPS.Latitude, d.GPS.Longitude)
		coords = fmt.Sprintf("%v, %v", d.GPS.Latitude, d.GPS.Longitude)
	}

	var items strings.Builder
	for _, it := range d.Items {
		fmt.Fprintf(&items, "<li>%s (Sold by: %s)</li>", it.Title, it.SellerName)
	}
	return fmt.Sprintf(`
		<h1>New Order Alert</h1>
		<p><strong>Customer:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Amount:</strong> ₹%s</p>
		<p><strong>Payment ID:</strong> %s</p>
		<p><strong>Address:</strong> %s</p>
		<p><strong>GPS Location:</strong> <a href="%s">View on Map</a></p>
		<p><strong>Coordinates:</strong> %s</p>
		<h3>Items Sold:</h3>
		<ul>%s</ul>`,
		d.CustomerName, d.CustomerEmail, formatAmount(d.Amount), paymentID,
		d.Address, gpsLink, coords, items.String())
}

// formatAmount prints a rupee amount without trailing zeros, the way the
// storefront displays prices.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
