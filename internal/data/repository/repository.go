package repository

import (
	"pricelist-manager/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	UserLevel UserLevelRepository
	Category  CategoryRepository
	Product   ProductRepository
	Image     ProductImageRepository
	Order     OrderRepository
	OrderItem OrderItemRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		UserLevel: NewUserLevelRepository(db, log),
		Category:  NewCategoryRepository(db, log),
		Product:   NewProductRepository(db, log),
		Image:     NewProductImageRepository(db, log),
		Order:     NewOrderRepository(db, log),
		OrderItem: NewOrderItemRepository(db, log),
	}
}
