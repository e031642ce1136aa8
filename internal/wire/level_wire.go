package wire

import (
	"pricelist-manager/internal/adaptor"
	"pricelist-manager/pkg/middleware"
	"pricelist-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireLevel(
	r chi.Router,
	levelHandler *adaptor.UserLevelHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/user-levels", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireAdmin(log))

		r.Get("/", levelHandler.GetLevels)
		r.Post("/", levelHandler.CreateLevel)
		r.Get("/{id}", levelHandler.GetLevelByID)
		r.Put("/{id}", levelHandler.UpdateLevel)
		r.Delete("/{id}", levelHandler.DeleteLevel)
	})
}
