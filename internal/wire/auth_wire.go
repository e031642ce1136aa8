package wire

import (
	"pricelist-manager/internal/adaptor"
	"pricelist-manager/pkg/middleware"
	"pricelist-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/send-otp", authHandler.SendOTP)
	r.Post("/api/auth/verify-otp", authHandler.VerifyOTP)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.Auth(config.JWT, log)).Post("/api/auth/logout", authHandler.Logout)
	r.With(middleware.Auth(config.JWT, log)).Get("/api/auth/verify", authHandler.Verify)
}
