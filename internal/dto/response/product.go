package response

import (
	"time"

	"pricelist-manager/internal/data/entity"
)

type ProductImageResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Alt       string    `json:"alt,omitempty"`
	IsPrimary bool      `json:"is_primary"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	SerialNumber string                 `json:"serial_number"`
	Price        float64                `json:"price"`
	FinalPrice   float64                `json:"final_price"`
	Stock        int                    `json:"stock"`
	Discount     float64                `json:"discount"`
	Description  *string                `json:"description,omitempty"`
	CategoryID   *string                `json:"category_id,omitempty"`
	Images       []ProductImageResponse `json:"images,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

func ImageToResponse(image *entity.ProductImage) ProductImageResponse {
	return ProductImageResponse{
		ID:        image.ID.String(),
		URL:       image.URL,
		Alt:       image.Alt,
		IsPrimary: image.IsPrimary,
		SortOrder: image.SortOrder,
		CreatedAt: image.CreatedAt,
	}
}

func ImagesToResponse(images []*entity.ProductImage) []ProductImageResponse {
	responses := make([]ProductImageResponse, 0, len(images))
	for _, image := range images {
		responses = append(responses, ImageToResponse(image))
	}
	return responses
}

// ProductToResponse renders the product with its price after the product
// discount and the viewer's level discount, both applied at display time.
func ProductToResponse(product *entity.Product, images []*entity.ProductImage, userDiscount float64) ProductResponse {
	resp := ProductResponse{
		ID:           product.ID.String(),
		Name:         product.Name,
		SerialNumber: product.SerialNumber,
		Price:        product.Price,
		FinalPrice:   FinalPrice(product.Price, product.Discount, userDiscount),
		Stock:        product.Stock,
		Discount:     product.Discount,
		Description:  product.Description,
		CreatedAt:    product.CreatedAt,
	}

	if product.CategoryID != nil {
		categoryID := product.CategoryID.String()
		resp.CategoryID = &categoryID
	}
	if len(images) > 0 {
		resp.Images = ImagesToResponse(images)
	}

	return resp
}

// FinalPrice applies the product discount first, then the user-level
// discount, each as a percentage of the running price.
func FinalPrice(price, productDiscount, userDiscount float64) float64 {
	final := price
	if productDiscount > 0 {
		final = final * (100 - productDiscount) / 100
	}
	if userDiscount > 0 {
		final = final * (100 - userDiscount) / 100
	}
	if final < 0 {
		return 0
	}
	return final
}
