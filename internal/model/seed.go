package model

import "gorm.io/gorm"

// seedListings is the demo catalog inserted on first run so the storefront
// renders something before any seller submits a listing.
var seedListings = []Listing{
	{
		Title:       "UltraCharge 20000mAh Power Bank",
		Description: "High-capacity portable charger with fast charging support for all devices.",
		Price:       2499,
		Category:    "Power Banks",
		Image:       "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?auto=format&fit=crop&w=800&q=80",
		SellerName:  "TechGear Official",
	},
	{
		Title:       "SonicBlast Pro Wireless Speaker",
		Description: "Immersive 360-degree sound with deep bass and 24-hour battery life.",
		Price:       8999,
		Category:    "Speakers",
		Image:       "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?auto=format&fit=crop&w=800&q=80",
		SellerName:  "AudioMaster",
	},
	{
		Title:       "ProBook X1 Carbon",
		Description: "Ultra-slim laptop with 4K display, i7 processor, and 1TB SSD.",
		Price:       124999,
		Category:    "Laptops",
		Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?auto=format&fit=crop&w=800&q=80",
		SellerName:  "LaptopWorld",
	},
	{
		Title:       "HyperFast 65W GaN Charger",
		Description: "Compact fast charger for laptops, tablets, and phones.",
		Price:       1999,
		Category:    "Chargers",
		Image:       "https://images.unsplash.com/photo-1583863788434-e58a36330cf0?auto=format&fit=crop&w=800&q=80",
		SellerName:  "PowerUp",
	},
	{
		Title:       "Zenith Noise Cancelling Headphones",
		Description: "Premium over-ear headphones with industry-leading noise cancellation.",
		Price:       24999,
		Category:    "Headphones",
		Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&w=800&q=80",
		SellerName:  "AudioMaster",
	},
}

// SeedListings inserts the demo catalog when the listings table is empty.
// Subsequent startups are a no-op.
func SeedListings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Listing{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	// Insert a copy so gorm's id backfill never touches the package-level
	// template between runs.
	listings := make([]Listing, len(seedListings))
	copy(listings, seedListings)
	return db.Create(&listings).Error
}
