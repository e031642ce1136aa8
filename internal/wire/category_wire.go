package wire

import (
	"pricelist-manager/internal/adaptor"
	"pricelist-manager/pkg/middleware"
	"pricelist-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCategory(
	r chi.Router,
	categoryHandler *adaptor.CategoryHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/categories", categoryHandler.GetCategories)
	r.Get("/api/categories/{id}", categoryHandler.GetCategoryByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/categories", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireAdmin(log))

		r.Post("/", categoryHandler.CreateCategory)
		r.Put("/{id}", categoryHandler.UpdateCategory)
		r.Delete("/{id}", categoryHandler.DeleteCategory)
	})
}
