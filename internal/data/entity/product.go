package entity

import "github.com/google/uuid"

type Product struct {
	Base
	Name         string     `db:"name"`
	SerialNumber string     `db:"serial_number"`
	Price        float64    `db:"price"`
	Stock        int        `db:"stock"`
	Discount     float64    `db:"discount"`
	Description  *string    `db:"description"`
	CategoryID   *uuid.UUID `db:"category_id"`
}
