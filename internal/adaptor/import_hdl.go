package adaptor

import (
	"net/http"

	"pricelist-manager/internal/usecase"
	"pricelist-manager/pkg/fileparse"
	"pricelist-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ImportHandler struct {
	service usecase.ImportService
	config  *utils.Config
	log     *zap.Logger
}

func NewImportHandler(service usecase.ImportService, config *utils.Config, log *zap.Logger) *ImportHandler {
	return &ImportHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "import")),
	}
}

// ImportProducts handles POST /api/bulk-import as multipart form data
// with a "file" field holding an Excel or Word price list and an
// optional "categoryId" for the imported products
func (h *ImportHandler) ImportProducts(w http.ResponseWriter, r *http.Request) {
	maxSize := h.config.Import.MaxSizeMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		utils.ResponseBadRequest(w, "File too large or malformed form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.ResponseBadRequest(w, "Import file is required", nil)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !fileparse.IsSpreadsheet(contentType) && !fileparse.IsDocument(contentType) {
		utils.ResponseBadRequest(w, "Only Excel (.xlsx, .xls) and Word (.docx, .doc) files are supported", nil)
		return
	}

	var categoryID *uuid.UUID
	if raw := r.FormValue("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid category id", nil)
			return
		}
		categoryID = &id
	}

	h.log.Info("Bulk import started",
		zap.String("filename", header.Filename),
		zap.String("content_type", contentType),
		zap.Int64("size", header.Size))

	result, err := h.service.ImportProducts(r.Context(), file, contentType, categoryID)
	if err != nil {
		handleServiceError(h.log, w, err, "import products")
		return
	}

	if len(result.Errors) > 0 {
		utils.ResponseBadRequest(w, "Import rejected", result)
		return
	}

	utils.ResponseSuccess(w, "Import finished", result)
}
