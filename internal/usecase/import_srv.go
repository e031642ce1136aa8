package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/internal/data/repository"
	"pricelist-manager/internal/dto/response"
	"pricelist-manager/pkg/fileparse"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ImportService interface {
	ImportProducts(ctx context.Context, file io.Reader, contentType string, categoryID *uuid.UUID) (*response.ImportResponse, error)
}

type importService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewImportService(repo *repository.Repository, log *zap.Logger) ImportService {
	return &importService{
		repo: repo,
		log:  log,
	}
}

// ImportProducts parses the uploaded price list and validates every row,
// reporting all violations at once. The import is all or nothing: a single
// bad row rejects the whole file so the admin fixes it and retries.
func (s *importService) ImportProducts(ctx context.Context, file io.Reader, contentType string, categoryID *uuid.UUID) (*response.ImportResponse, error) {
	// 1. Resolve the target category if one was given
	if categoryID != nil {
		category, err := s.repo.Category.FindByID(ctx, *categoryID)
		if err != nil {
			s.log.Error("Failed to check import category", zap.Error(err), zap.String("category_id", categoryID.String()))
			return nil, fmt.Errorf("failed to check category")
		}
		if category == nil {
			return nil, fmt.Errorf("category not found")
		}
	}

	// 2. Parse by content type
	var rows []fileparse.ProductRow
	var err error
	switch {
	case fileparse.IsSpreadsheet(contentType):
		rows, err = fileparse.ParseSpreadsheet(file)
	case fileparse.IsDocument(contentType):
		rows, err = fileparse.ParseDocument(file)
	default:
		return nil, fmt.Errorf("unsupported file type")
	}

	if err != nil {
		if errors.Is(err, fileparse.ErrMissingColumns) {
			return nil, fmt.Errorf("required columns not found in file")
		}
		if errors.Is(err, fileparse.ErrNoRows) {
			return nil, fmt.Errorf("no product rows found in file")
		}
		s.log.Error("Failed to parse import file", zap.Error(err), zap.String("content_type", contentType))
		return nil, fmt.Errorf("failed to parse file")
	}

	// 3. Validate rows, collecting every violation instead of failing fast
	result := &response.ImportResponse{TotalRows: len(rows)}
	seen := make(map[string]int)
	serials := make([]string, 0, len(rows))

	for i, row := range rows {
		rowNum := i + 2 // 1-based plus header row

		switch {
		case utf8.RuneCountInString(row.Name) < 2:
			result.Errors = append(result.Errors, response.RowError{Row: rowNum, Message: "product name must be at least 2 characters"})
		case row.SerialNumber == "":
			result.Errors = append(result.Errors, response.RowError{Row: rowNum, Message: "serial number is required"})
		case row.SalePrice <= 0:
			result.Errors = append(result.Errors, response.RowError{Row: rowNum, Message: "sale price must be positive"})
		case row.Quantity < 0:
			result.Errors = append(result.Errors, response.RowError{Row: rowNum, Message: "quantity must not be negative"})
		case row.Discount < 0 || row.Discount > 100:
			result.Errors = append(result.Errors, response.RowError{Row: rowNum, Message: "discount must be between 0 and 100"})
		default:
			if firstRow, dup := seen[row.SerialNumber]; dup {
				result.Errors = append(result.Errors, response.RowError{
					Row:     rowNum,
					Message: fmt.Sprintf("duplicate serial number, first seen at row %d", firstRow),
				})
				continue
			}
			seen[row.SerialNumber] = rowNum
			serials = append(serials, row.SerialNumber)
		}
	}

	// 4. Flag serials already in the catalog
	existing, err := s.repo.Product.FindSerialNumbersIn(ctx, serials)
	if err != nil {
		s.log.Error("Failed to check existing serial numbers", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing products")
	}
	for _, serial := range serials {
		if existing[serial] {
			result.Errors = append(result.Errors, response.RowError{
				Row:     seen[serial],
				Message: "serial number already exists",
			})
		}
	}

	if len(result.Errors) > 0 {
		result.SkippedRows = result.TotalRows
		s.log.Warn("Bulk import rejected",
			zap.Int("total", result.TotalRows),
			zap.Int("violations", len(result.Errors)))
		return result, nil
	}

	// 5. Every row passed, insert them in one transaction
	now := time.Now()
	products := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		product := &entity.Product{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name:         row.Name,
			SerialNumber: row.SerialNumber,
			Price:        row.SalePrice,
			Stock:        row.Quantity,
			Discount:     row.Discount,
			CategoryID:   categoryID,
		}
		if row.Description != "" {
			desc := row.Description
			product.Description = &desc
		}
		products = append(products, product)
	}

	if err := s.repo.Product.CreateBatch(ctx, products); err != nil {
		s.log.Error("Failed to insert imported products", zap.Error(err), zap.Int("count", len(products)))
		return nil, fmt.Errorf("failed to import products")
	}

	result.ImportedRows = len(products)

	s.log.Info("Bulk import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.ImportedRows))

	return result, nil
}
