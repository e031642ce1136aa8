package request

type UserLevelRequest struct {
	Name               string  `json:"name" validate:"required,min=1,max=100"`
	DiscountPercentage float64 `json:"discount_percentage" validate:"gte=0,lte=100"`
	Description        *string `json:"description,omitempty"`
}

type UserLevelUpdateRequest struct {
	Name               *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Description        *string  `json:"description,omitempty"`
}
