package response

import (
	"time"

	"pricelist-manager/internal/data/entity"
)

type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func CategoryToResponse(category *entity.Category, productCount int64) CategoryResponse {
	return CategoryResponse{
		ID:           category.ID.String(),
		Name:         category.Name,
		Description:  category.Description,
		ProductCount: productCount,
		CreatedAt:    category.CreatedAt,
	}
}
