package request

type UserUpdateRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,phone_ir"`
	LevelID *string `json:"level_id,omitempty" validate:"omitempty,uuid4"`
}

type UserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}
