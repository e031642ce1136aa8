package response

import (
	"time"

	"pricelist-manager/internal/data/entity"
)

type AuthResponse struct {
	UserID          string          `json:"user_id"`
	Token           string          `json:"token"`
	ExpiresAt       time.Time       `json:"expires_at"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Role            entity.UserRole `json:"role"`
	IsPhoneVerified bool            `json:"is_phone_verified"`
}

func AuthToResponse(user *entity.User, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		UserID:          user.ID.String(),
		Token:           token,
		ExpiresAt:       expiresAt,
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role,
		IsPhoneVerified: user.IsPhoneVerified,
	}
}
