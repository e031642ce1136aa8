package usecase

import (
	"bytes"
	"context"
	"testing"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/pkg/fileparse"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildImportFile(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

var importHeaders = []any{"نام محصول", "شماره سریال", "قیمت فروش", "موجودی", "تخفیف", "توضیحات"}

func TestImportProducts(t *testing.T) {
	repo, _, _, _, productRepo, _, _, _ := newTestRepository()

	var inserted []*entity.Product
	productRepo.CreateBatchFn = func(ctx context.Context, products []*entity.Product) error {
		inserted = products
		return nil
	}

	svc := NewImportService(repo, testLogger())

	buf := buildImportFile(t, [][]any{
		importHeaders,
		{"دریل برقی", "SN-001", "1500000", "12", "5", "دریل ۸۰۰ وات"},
		{"پیچ گوشتی", "SN-002", "250000", "40", "", ""},
	})

	result, err := svc.ImportProducts(context.Background(), buf, fileparse.ContentTypeXLSX, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.ImportedRows)
	assert.Equal(t, 0, result.SkippedRows)
	assert.Empty(t, result.Errors)

	require.Len(t, inserted, 2)
	assert.Equal(t, "SN-001", inserted[0].SerialNumber)
	assert.Equal(t, 1500000.0, inserted[0].Price)
	assert.Equal(t, 12, inserted[0].Stock)
	assert.Equal(t, 5.0, inserted[0].Discount)
	require.NotNil(t, inserted[0].Description)
	assert.Equal(t, "دریل ۸۰۰ وات", *inserted[0].Description)
	assert.Nil(t, inserted[1].Description)
	assert.Nil(t, inserted[0].CategoryID)
}

func TestImportProductsIntoCategory(t *testing.T) {
	repo, _, _, categoryRepo, productRepo, _, _, _ := newTestRepository()

	categoryID := uuid.New()
	categoryRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
		return &entity.Category{Base: entity.Base{ID: id}, Name: "ابزار دستی"}, nil
	}

	var inserted []*entity.Product
	productRepo.CreateBatchFn = func(ctx context.Context, products []*entity.Product) error {
		inserted = products
		return nil
	}

	svc := NewImportService(repo, testLogger())

	buf := buildImportFile(t, [][]any{
		importHeaders,
		{"چکش", "SN-010", "120000", "7", "", ""},
	})

	_, err := svc.ImportProducts(context.Background(), buf, fileparse.ContentTypeXLSX, &categoryID)
	require.NoError(t, err)

	require.Len(t, inserted, 1)
	require.NotNil(t, inserted[0].CategoryID)
	assert.Equal(t, categoryID, *inserted[0].CategoryID)
}

func TestImportProductsUnknownCategory(t *testing.T) {
	repo, _, _, _, _, _, _, _ := newTestRepository()
	svc := NewImportService(repo, testLogger())

	categoryID := uuid.New()
	_, err := svc.ImportProducts(context.Background(), bytes.NewBufferString("x"), fileparse.ContentTypeXLSX, &categoryID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category not found")
}

func TestImportProductsRejectsFileWithViolations(t *testing.T) {
	repo, _, _, _, productRepo, _, _, _ := newTestRepository()

	called := false
	productRepo.CreateBatchFn = func(ctx context.Context, products []*entity.Product) error {
		called = true
		return nil
	}

	svc := NewImportService(repo, testLogger())

	buf := buildImportFile(t, [][]any{
		importHeaders,
		{"x", "SN-001", "1000", "5", "", ""},       // row 2: name too short
		{"انبردست", "", "1000", "5", "", ""},       // row 3: no serial
		{"چکش", "SN-002", "0", "5", "", ""},        // row 4: zero price
		{"اره", "SN-003", "1000", "5", "150", ""},  // row 5: discount out of range
		{"متر", "SN-004", "2000", "3", "", ""},     // row 6: ok
		{"متر دوم", "SN-004", "2500", "1", "", ""}, // row 7: dup of row 6
	})

	result, err := svc.ImportProducts(context.Background(), buf, fileparse.ContentTypeXLSX, nil)
	require.NoError(t, err)

	assert.Equal(t, 6, result.TotalRows)
	assert.Equal(t, 0, result.ImportedRows)
	assert.Equal(t, 6, result.SkippedRows)
	require.Len(t, result.Errors, 5)

	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "at least 2 characters")
	assert.Equal(t, 3, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Message, "serial number is required")
	assert.Equal(t, 4, result.Errors[2].Row)
	assert.Contains(t, result.Errors[2].Message, "price must be positive")
	assert.Equal(t, 5, result.Errors[3].Row)
	assert.Contains(t, result.Errors[3].Message, "between 0 and 100")
	assert.Equal(t, 7, result.Errors[4].Row)
	assert.Contains(t, result.Errors[4].Message, "duplicate serial number, first seen at row 6")

	assert.False(t, called, "a file with violations must not insert anything")
}

func TestImportProductsRejectsExistingSerials(t *testing.T) {
	repo, _, _, _, productRepo, _, _, _ := newTestRepository()

	productRepo.FindSerialNumbersInFn = func(ctx context.Context, serials []string) (map[string]bool, error) {
		return map[string]bool{"SN-001": true}, nil
	}

	called := false
	productRepo.CreateBatchFn = func(ctx context.Context, products []*entity.Product) error {
		called = true
		return nil
	}

	svc := NewImportService(repo, testLogger())

	buf := buildImportFile(t, [][]any{
		importHeaders,
		{"دریل", "SN-001", "1000", "5", "", ""},
		{"چکش", "SN-002", "2000", "3", "", ""},
	})

	result, err := svc.ImportProducts(context.Background(), buf, fileparse.ContentTypeXLSX, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.ImportedRows)
	assert.Equal(t, 2, result.SkippedRows)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "serial number already exists")
	assert.False(t, called)
}

func TestImportProductsUnsupportedContentType(t *testing.T) {
	repo, _, _, _, _, _, _, _ := newTestRepository()
	svc := NewImportService(repo, testLogger())

	_, err := svc.ImportProducts(context.Background(), bytes.NewBufferString("x"), "text/plain", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestImportProductsMissingColumns(t *testing.T) {
	repo, _, _, _, _, _, _, _ := newTestRepository()
	svc := NewImportService(repo, testLogger())

	buf := buildImportFile(t, [][]any{
		{"نام محصول", "قیمت فروش"},
		{"دریل", "1000"},
	})

	_, err := svc.ImportProducts(context.Background(), buf, fileparse.ContentTypeXLSX, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required columns not found")
}
