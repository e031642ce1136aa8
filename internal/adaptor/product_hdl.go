package adaptor

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"pricelist-manager/internal/dto/request"
	"pricelist-manager/internal/usecase"
	"pricelist-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	config  *utils.Config
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, config *utils.Config, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "product")),
	}
}

// viewerID is uuid.Nil for anonymous requests
func (h *ProductHandler) viewerID(r *http.Request) uuid.UUID {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return userID
	}
	return uuid.Nil
}

// GetProducts handles GET /api/products
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ProductListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Search: query.Get("search"),
	}

	if categoryID := query.Get("category_id"); categoryID != "" {
		req.CategoryID = &categoryID
	}
	if minStr := query.Get("min_price"); minStr != "" {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			req.MinPrice = &min
		}
	}
	if maxStr := query.Get("max_price"); maxStr != "" {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			req.MaxPrice = &max
		}
	}

	products, err := h.service.List(r.Context(), req, h.viewerID(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get products")
		return
	}

	utils.ResponseSuccess(w, "success", products)
}

// GetProductByID handles GET /api/products/{id}
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	product, err := h.service.GetByID(r.Context(), id, h.viewerID(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get product")
		return
	}

	utils.ResponseSuccess(w, "success", product)
}

// GetProductImages handles GET /api/products/{id}/images
func (h *ProductHandler) GetProductImages(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	images, err := h.service.ListImages(r.Context(), id)
	if err != nil {
		handleServiceError(h.log, w, err, "get product images")
		return
	}

	utils.ResponseSuccess(w, "success", images)
}

// CreateProduct handles POST /api/admin/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product created successfully", product)
}

// UpdateProduct handles PUT /api/admin/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	var req request.ProductUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	product, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /api/admin/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(h.log, w, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted successfully", nil)
}

// Accepted upload formats, keyed by extension
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadImage handles POST /api/admin/products/{id}/images as multipart
// form data with an "image" file field
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	productID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	maxSize := h.config.Upload.MaxSizeMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		utils.ResponseBadRequest(w, "File too large or malformed form", nil)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.ResponseBadRequest(w, "Image file is required", nil)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExtensions[ext] {
		utils.ResponseBadRequest(w, "Only jpg, jpeg, png and webp images are allowed", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("Failed to read uploaded image", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to read file")
		return
	}

	sortOrder := 0
	if v := r.FormValue("sort_order"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			sortOrder = n
		}
	}

	req := &request.ImageUploadRequest{
		Alt:       r.FormValue("alt"),
		IsPrimary: r.FormValue("is_primary") == "true",
		SortOrder: sortOrder,
	}

	image, err := h.service.AddImage(r.Context(), productID, data, ext, req)
	if err != nil {
		handleServiceError(h.log, w, err, "upload image")
		return
	}

	utils.ResponseCreated(w, "Image uploaded successfully", image)
}

// SetPrimaryImage handles PATCH /api/admin/products/{id}/images/{imageId}/primary
func (h *ProductHandler) SetPrimaryImage(w http.ResponseWriter, r *http.Request) {
	productID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	imageID, err := utils.ParseUUID(chi.URLParam(r, "imageId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid image ID", nil)
		return
	}

	if err := h.service.SetPrimaryImage(r.Context(), productID, imageID); err != nil {
		handleServiceError(h.log, w, err, "set primary image")
		return
	}

	utils.ResponseSuccess(w, "Primary image updated successfully", nil)
}

// DeleteImage handles DELETE /api/admin/products/{id}/images/{imageId}
func (h *ProductHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	productID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	imageID, err := utils.ParseUUID(chi.URLParam(r, "imageId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid image ID", nil)
		return
	}

	if err := h.service.DeleteImage(r.Context(), productID, imageID); err != nil {
		handleServiceError(h.log, w, err, "delete image")
		return
	}

	utils.ResponseSuccess(w, "Image deleted successfully", nil)
}
