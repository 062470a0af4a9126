package models

import "time"

// Product represents a catalog product.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	ImageURL    string    `db:"image_url" json:"imageUrl"`
	Category    string    `db:"category" json:"category"`
	Stock       int       `db:"stock" json:"stock"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// InStock reports whether the product can currently be added to a cart.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
