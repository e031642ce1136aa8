package adaptor

import (
	"net/http"
	"strings"

	"pricelist-manager/internal/usecase"
	"pricelist-manager/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Level    *UserLevelHandler
	Category *CategoryHandler
	Product  *ProductHandler
	Order    *OrderHandler
	Import   *ImportHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, config, log),
		User:     NewUserHandler(service.User, log),
		Level:    NewUserLevelHandler(service.Level, log),
		Category: NewCategoryHandler(service.Category, log),
		Product:  NewProductHandler(service.Product, config, log),
		Order:    NewOrderHandler(service.Order, log),
		Import:   NewImportHandler(service.Import, config, log),
	}
}

// handleServiceError maps service error messages onto HTTP statuses.
// Services return lowercase marker strings, never raw database errors.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "expired"),
		strings.Contains(errMsg, "insufficient stock"),
		strings.Contains(errMsg, "unsupported"),
		strings.Contains(errMsg, "required columns"),
		strings.Contains(errMsg, "no product rows"),
		strings.Contains(errMsg, "only pending"):
		log.Warn("Rejected "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "already"),
		strings.Contains(errMsg, "has products"),
		strings.Contains(errMsg, "has assigned users"),
		strings.Contains(errMsg, "cannot be deleted"):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
