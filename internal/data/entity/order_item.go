package entity

import "github.com/google/uuid"

type OrderItem struct {
	BaseSimple
	OrderID   uuid.UUID `db:"order_id"`
	ProductID uuid.UUID `db:"product_id"`
	Quantity  int       `db:"quantity"`
	Price     float64   `db:"price"` // unit price snapshot at order time, pre-discount
}
