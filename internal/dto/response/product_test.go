package response

import (
	"testing"
	"time"

	"pricelist-manager/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name            string
		price           float64
		productDiscount float64
		userDiscount    float64
		want            float64
	}{
		{"no discounts", 1000, 0, 0, 1000},
		{"product discount only", 1000, 10, 0, 900},
		{"user discount only", 1000, 0, 20, 800},
		{"both applied sequentially", 1000, 10, 20, 720},
		{"full product discount", 1000, 100, 0, 0},
		{"full user discount", 1000, 10, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FinalPrice(tt.price, tt.productDiscount, tt.userDiscount), 0.001)
		})
	}
}

func TestProductToResponse(t *testing.T) {
	categoryID := uuid.New()
	desc := "دریل ۸۰۰ وات"
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:         "دریل برقی",
		SerialNumber: "SN-001",
		Price:        1500000,
		Stock:        12,
		Discount:     5,
		Description:  &desc,
		CategoryID:   &categoryID,
	}
	images := []*entity.ProductImage{
		{
			BaseSimple: entity.BaseSimple{ID: uuid.New()},
			ProductID:  product.ID,
			URL:        "/uploads/a.png",
			IsPrimary:  true,
		},
	}

	resp := ProductToResponse(product, images, 10)

	assert.Equal(t, product.ID.String(), resp.ID)
	assert.Equal(t, 1500000.0, resp.Price)
	assert.InDelta(t, 1282500.0, resp.FinalPrice, 0.001)
	assert.Equal(t, categoryID.String(), *resp.CategoryID)
	assert.Len(t, resp.Images, 1)
	assert.True(t, resp.Images[0].IsPrimary)
}
