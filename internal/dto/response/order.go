package response

import (
	"time"

	"pricelist-manager/internal/data/entity"
)

type OrderItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

type OrderResponse struct {
	ID                 string              `json:"id"`
	UserID             string              `json:"user_id"`
	Status             entity.OrderStatus  `json:"status"`
	TotalAmount        float64             `json:"total_amount"`
	DiscountPercentage float64             `json:"discount_percentage"`
	PayableAmount      float64             `json:"payable_amount"`
	Items              []OrderItemResponse `json:"items,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func OrderItemToResponse(item *entity.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:        item.ID.String(),
		ProductID: item.ProductID.String(),
		Quantity:  item.Quantity,
		Price:     item.Price,
		Subtotal:  item.Price * float64(item.Quantity),
	}
}

// OrderToResponse renders the order. Stored amounts are pre-discount;
// the payable amount applies the user's level discount at display time.
func OrderToResponse(order *entity.Order, items []*entity.OrderItem, userDiscount float64) OrderResponse {
	resp := OrderResponse{
		ID:                 order.ID.String(),
		UserID:             order.UserID.String(),
		Status:             order.Status,
		TotalAmount:        order.TotalAmount,
		DiscountPercentage: userDiscount,
		PayableAmount:      FinalPrice(order.TotalAmount, 0, userDiscount),
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}

	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemToResponse(item))
	}

	return resp
}
