package model

import "time"

// Listing is a product offered for sale by a seller. Rows are append-only:
// there is no update or delete path, and the storefront sorts newest first.
type Listing struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"` // major currency units (rupees)
	Category    string    `gorm:"size:128" json:"category"`
	Image       string    `json:"image"`
	SellerName  string    `gorm:"size:128" json:"seller_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Listing) TableName() string { return "listings" }
