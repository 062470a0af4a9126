package models

import "time"

// Address is a delivery address attached to a user account. Schema
// placeholder; nothing in this service writes addresses yet.
type Address struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`
	Street       string    `db:"street" json:"street"`
	Number       string    `db:"number" json:"number"`
	Complement   *string   `db:"complement" json:"complement,omitempty"`
	Neighborhood string    `db:"neighborhood" json:"neighborhood"`
	City         string    `db:"city" json:"city"`
	State        string    `db:"state" json:"state"`
	ZipCode      string    `db:"zip_code" json:"zipCode"`
	IsDefault    bool      `db:"is_default" json:"isDefault"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
