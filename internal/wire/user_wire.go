package wire

import (
	"pricelist-manager/internal/adaptor"
	"pricelist-manager/pkg/middleware"
	"pricelist-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	// Own profile, any authenticated user
	r.Route("/api/profile", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		r.Put("/", userHandler.UpdateProfile)
		r.Put("/password", userHandler.ChangePassword)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireAdmin(log))

		r.Get("/", userHandler.GetUsers)
		r.Get("/{id}", userHandler.GetUserByID)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Patch("/{id}/role", userHandler.UpdateUserRole)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
