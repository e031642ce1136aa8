package wire

import (
	"pricelist-manager/internal/adaptor"
	"pricelist-manager/pkg/middleware"
	"pricelist-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	importHandler *adaptor.ImportHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Optional auth so logged-in users see their level prices
	r.With(middleware.OptionalAuth(config.JWT, log)).
		Get("/api/products", productHandler.GetProducts)
	r.With(middleware.OptionalAuth(config.JWT, log)).
		Get("/api/products/{id}", productHandler.GetProductByID)
	r.Get("/api/products/{id}/images", productHandler.GetProductImages)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/products", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireAdmin(log))

		r.Post("/", productHandler.CreateProduct)
		r.Put("/{id}", productHandler.UpdateProduct)
		r.Delete("/{id}", productHandler.DeleteProduct)

		r.Post("/{id}/images", productHandler.UploadImage)
		r.Patch("/{id}/images/{imageId}/primary", productHandler.SetPrimaryImage)
		r.Delete("/{id}/images/{imageId}", productHandler.DeleteImage)
	})

	r.Route("/api/bulk-import", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireAdmin(log))

		r.Post("/", importHandler.ImportProducts)
	})
}
