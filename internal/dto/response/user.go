package response

import (
	"time"

	"pricelist-manager/internal/data/entity"
)

type UserResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Phone              *string         `json:"phone,omitempty"`
	Role               entity.UserRole `json:"role"`
	LevelID            *string         `json:"level_id,omitempty"`
	DiscountPercentage float64         `json:"discount_percentage"`
	IsPhoneVerified    bool            `json:"is_phone_verified"`
	CreatedAt          time.Time       `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:                 user.ID.String(),
		Name:               user.Name,
		Email:              user.Email,
		Phone:              user.Phone,
		Role:               user.Role,
		DiscountPercentage: user.DiscountPercentage,
		IsPhoneVerified:    user.IsPhoneVerified,
		CreatedAt:          user.CreatedAt,
	}

	if user.LevelID != nil {
		levelID := user.LevelID.String()
		resp.LevelID = &levelID
	}

	return resp
}

func UsersToResponse(users []*entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, UserToResponse(user))
	}
	return responses
}
