package entity

type UserLevel struct {
	Base
	Name               string  `db:"name"`
	DiscountPercentage float64 `db:"discount_percentage"` // 0-100
	Description        *string `db:"description"`
}
