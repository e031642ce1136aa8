package request

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,phone_ir"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,phone_ir"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,phone_ir"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}
