package adaptor

import (
	"encoding/json"
	"net/http"

	"pricelist-manager/internal/dto/request"
	"pricelist-manager/internal/usecase"
	"pricelist-manager/pkg/middleware"
	"pricelist-manager/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	config  *utils.Config
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "auth")),
	}
}

func (h *AuthHandler) cookieMaxAge() int {
	days := h.config.JWT.ExpiryDays
	if days <= 0 {
		days = 7
	}
	return days * 24 * 60 * 60
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "register")
		return
	}

	middleware.SetAuthCookie(w, resp.Token, h.cookieMaxAge())
	utils.ResponseCreated(w, "Account created successfully", resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "login")
		return
	}

	middleware.SetAuthCookie(w, resp.Token, h.cookieMaxAge())
	utils.ResponseSuccess(w, "Logged in successfully", resp)
}

// Logout handles POST /api/auth/logout. Tokens are stateless, clearing
// the cookie is all there is to do.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearAuthCookie(w)
	utils.ResponseSuccess(w, "Logged out successfully", nil)
}

// SendOTP handles POST /api/auth/send-otp
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req request.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	code, err := h.service.SendOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "send OTP")
		return
	}

	// The code is only exposed in debug mode, production delivers by SMS
	data := map[string]any{"phone": req.Phone}
	if h.config.App.Debug {
		data["code"] = code
	}

	utils.ResponseSuccess(w, "Verification code sent", data)
}

// VerifyOTP handles POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.VerifyOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "verify OTP")
		return
	}

	middleware.SetAuthCookie(w, resp.Token, h.cookieMaxAge())
	utils.ResponseSuccess(w, "Phone verified successfully", resp)
}

// Verify handles GET /api/auth/verify. The Auth middleware has already
// checked the token, so reaching here means it is valid.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.Me(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get current user")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}
