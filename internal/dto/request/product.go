package request

type ProductRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=200"`
	SerialNumber string  `json:"serial_number" validate:"required,min=1,max=100"`
	Price        float64 `json:"price" validate:"required,gte=0"`
	Stock        int     `json:"stock" validate:"gte=0"`
	Discount     float64 `json:"discount" validate:"gte=0,lte=100"`
	Description  *string `json:"description,omitempty"`
	CategoryID   *string `json:"category_id,omitempty" validate:"omitempty,uuid4"`
}

type ProductUpdateRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	SerialNumber *string  `json:"serial_number,omitempty" validate:"omitempty,min=1,max=100"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock        *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Discount     *float64 `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Description  *string  `json:"description,omitempty"`
	CategoryID   *string  `json:"category_id,omitempty" validate:"omitempty,uuid4"`
}

type ProductListRequest struct {
	PaginatedRequest
	Search     string   `json:"search,omitempty"`
	CategoryID *string  `json:"category_id,omitempty" validate:"omitempty,uuid4"`
	MinPrice   *float64 `json:"min_price,omitempty" validate:"omitempty,gte=0"`
	MaxPrice   *float64 `json:"max_price,omitempty" validate:"omitempty,gte=0"`
}
