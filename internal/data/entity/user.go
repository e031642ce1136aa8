package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	Base
	Name               string     `db:"name"`
	Email              string     `db:"email"`
	PasswordHash       string     `db:"password"`
	Phone              *string    `db:"phone"`
	Role               UserRole   `db:"role"`
	LevelID            *uuid.UUID `db:"level_id"`
	DiscountPercentage float64    `db:"discount_percentage"`
	OTPCode            *string    `db:"otp_code"`
	OTPExpires         *time.Time `db:"otp_expires"`
	IsPhoneVerified    bool       `db:"is_phone_verified"`
}
