package model

import (
	"encoding/json"
	"time"
)

// Order is an immutable record of one completed checkout. Rows are written
// exactly once, after the client reports payment completion, and never
// updated. payment_id carries no uniqueness constraint, so concurrent
// verification calls for the same payment insert separate rows.
type Order struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	OrderID         string    `gorm:"size:64;index" json:"order_id"`   // gateway order handle
	PaymentID       string    `gorm:"size:64;index" json:"payment_id"` // gateway payment id
	Amount          float64   `gorm:"not null" json:"amount"`
	Currency        string    `gorm:"size:8" json:"currency"`
	Status          string    `gorm:"size:16" json:"status"`
	CustomerName    string    `gorm:"size:128" json:"customer_name"`
	CustomerEmail   string    `gorm:"size:255" json:"customer_email"`
	CustomerAddress string    `json:"customer_address"`
	GPSCoordinates  string    `gorm:"column:gps_coordinates" json:"gps_coordinates"` // JSON lat/long pair or "null"
	Items           string    `json:"items"`                                         // JSON listing snapshots
	CreatedAt       time.Time `json:"created_at"`
}

func (Order) TableName() string { return "orders" }

// StatusPaid is the only status the verification path ever writes.
const StatusPaid = "PAID"

// GPSPoint is the optional delivery coordinate pair supplied at checkout.
type GPSPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OrderItem is a denormalized snapshot of a listing at purchase time. The
// snapshot is stored verbatim on the order so later catalog changes never
// affect historical orders.
type OrderItem struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	SellerName  string  `json:"seller_name"`
}

// OrderDetails is the checkout payload the client attaches to a payment
// completion report. Field names match what the web client sends.
type OrderDetails struct {
	Amount        float64     `json:"amount"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	Address       string      `json:"address"`
	GPS           *GPSPoint   `json:"gps"`
	Items         []OrderItem `json:"items"`
}

// MarshalGPS serializes the coordinate pair for the gps_coordinates column.
// A missing pair serializes as "null", matching the column's historical
// contents.
func MarshalGPS(gps *GPSPoint) string {
	b, err := json.Marshal(gps)
	if err != nil {
		return "null"
	}
	return string(b)
}

// MarshalItems serializes the purchased listing snapshots for the items
// column.
func MarshalItems(items []OrderItem) string {
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}
