package models

import "time"

// OrderStatus enumerates the order lifecycle states defined by the schema.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order and OrderItem mirror the external schema. No checkout flow exists
// in this service; these types exist so the schema and any future order
// reader agree on shape.
type Order struct {
	ID        string      `db:"id" json:"id"`
	UserID    string      `db:"user_id" json:"userId"`
	Status    OrderStatus `db:"status" json:"status"`
	Total     float64     `db:"total" json:"total"`
	AddressID string      `db:"address_id" json:"addressId"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
}

// OrderItem is a line of an order, with the unit price captured at
// purchase time.
type OrderItem struct {
	ID        string    `db:"id" json:"id"`
	OrderID   string    `db:"order_id" json:"orderId"`
	ProductID string    `db:"product_id" json:"productId"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Price     float64   `db:"price" json:"price"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
