package entity

import "github.com/google/uuid"

type ProductImage struct {
	BaseSimple
	ProductID uuid.UUID `db:"product_id"`
	URL       string    `db:"url"`
	Alt       string    `db:"alt"`
	IsPrimary bool      `db:"is_primary"` // at most one true per product
	SortOrder int       `db:"sort_order"`
}
