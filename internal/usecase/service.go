package usecase

import (
	"pricelist-manager/internal/data/repository"
	"pricelist-manager/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Level    UserLevelService
	Category CategoryService
	Product  ProductService
	Order    OrderService
	Import   ImportService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo, log),
		Level:    NewUserLevelService(repo, log),
		Category: NewCategoryService(repo, log),
		Product:  NewProductService(repo, config, log),
		Order:    NewOrderService(repo, log),
		Import:   NewImportService(repo, log),
	}
}
