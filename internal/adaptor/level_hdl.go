package adaptor

import (
	"encoding/json"
	"net/http"

	"pricelist-manager/internal/dto/request"
	"pricelist-manager/internal/usecase"
	"pricelist-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserLevelHandler struct {
	service usecase.UserLevelService
	log     *zap.Logger
}

func NewUserLevelHandler(service usecase.UserLevelService, log *zap.Logger) *UserLevelHandler {
	return &UserLevelHandler{
		service: service,
		log:     log.With(zap.String("handler", "user_level")),
	}
}

// GetLevels handles GET /api/admin/user-levels
func (h *UserLevelHandler) GetLevels(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	levels, err := h.service.List(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get levels")
		return
	}

	utils.ResponseSuccess(w, "success", levels)
}

// GetLevelByID handles GET /api/admin/user-levels/{id}
func (h *UserLevelHandler) GetLevelByID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid level ID", nil)
		return
	}

	level, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(h.log, w, err, "get level")
		return
	}

	utils.ResponseSuccess(w, "success", level)
}

// CreateLevel handles POST /api/admin/user-levels
func (h *UserLevelHandler) CreateLevel(w http.ResponseWriter, r *http.Request) {
	var req request.UserLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	level, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create level")
		return
	}

	utils.ResponseCreated(w, "Level created successfully", level)
}

// UpdateLevel handles PUT /api/admin/user-levels/{id}
func (h *UserLevelHandler) UpdateLevel(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid level ID", nil)
		return
	}

	var req request.UserLevelUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	level, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update level")
		return
	}

	utils.ResponseSuccess(w, "Level updated successfully", level)
}

// DeleteLevel handles DELETE /api/admin/user-levels/{id}
func (h *UserLevelHandler) DeleteLevel(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid level ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(h.log, w, err, "delete level")
		return
	}

	utils.ResponseSuccess(w, "Level deleted successfully", nil)
}
