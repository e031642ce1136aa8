package wire

import (
	"net/http"

	"pricelist-manager/internal/adaptor"
	"pricelist-manager/internal/data/repository"
	"pricelist-manager/internal/usecase"
	"pricelist-manager/pkg/middleware"
	"pricelist-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds the service, handler and router graph
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Routes
	wireAuth(r, handler.Auth, config, logger)
	wireUser(r, handler.User, config, logger)
	wireLevel(r, handler.Level, config, logger)
	wireCategory(r, handler.Category, config, logger)
	wireProduct(r, handler.Product, handler.Import, config, logger)
	wireOrder(r, handler.Order, config, logger)

	// Uploaded images are served straight off disk
	fileServer := http.StripPrefix(config.Upload.PublicPath+"/",
		http.FileServer(http.Dir(config.Upload.Dir)))
	r.Get(config.Upload.PublicPath+"/*", fileServer.ServeHTTP)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
