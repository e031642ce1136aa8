package wire

import (
	"pricelist-manager/internal/adaptor"
	"pricelist-manager/pkg/middleware"
	"pricelist-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		r.Post("/", orderHandler.CreateOrder)
		r.Get("/", orderHandler.GetMyOrders)
		r.Get("/{id}", orderHandler.GetOrderByID)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/orders", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireAdmin(log))

		r.Get("/", orderHandler.GetAllOrders)
		r.Patch("/{id}/status", orderHandler.UpdateOrderStatus)
		r.Delete("/{id}", orderHandler.DeleteOrder)
	})
}
