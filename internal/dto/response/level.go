package response

import (
	"time"

	"pricelist-manager/internal/data/entity"
)

type UserLevelResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	DiscountPercentage float64   `json:"discount_percentage"`
	Description        *string   `json:"description,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func UserLevelToResponse(level *entity.UserLevel) UserLevelResponse {
	return UserLevelResponse{
		ID:                 level.ID.String(),
		Name:               level.Name,
		DiscountPercentage: level.DiscountPercentage,
		Description:        level.Description,
		CreatedAt:          level.CreatedAt,
	}
}

func UserLevelsToResponse(levels []*entity.UserLevel) []UserLevelResponse {
	responses := make([]UserLevelResponse, 0, len(levels))
	for _, level := range levels {
		responses = append(responses, UserLevelToResponse(level))
	}
	return responses
}
