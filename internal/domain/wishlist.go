package domain

import "time"

// WishlistEntry is a product snapshot taken when the entry was added.
// Prices are not re-validated afterwards.
type WishlistEntry struct {
	ProductID    string    `json:"productId"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	RegularPrice float64   `json:"regularPrice,omitempty"`
	SalePrice    float64   `json:"salePrice,omitempty"`
	ImageURL     string    `json:"image,omitempty"`
	AddedAt      time.Time `json:"addedAt"`
}
