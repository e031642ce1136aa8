package fileparse

import "errors"

// ProductRow is one extracted price-list line before validation
type ProductRow struct {
	Name         string
	SerialNumber string
	SalePrice    float64
	Quantity     int
	Discount     float64
	Description  string
}

var (
	ErrUnsupportedFile = errors.New("unsupported or corrupt file")
	ErrMissingColumns  = errors.New("required columns not found")
	ErrNoRows          = errors.New("no product rows extracted")
)

// Spreadsheet content types accepted by bulk import
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeXLS  = "application/vnd.ms-excel"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeDOC  = "application/msword"
)

// IsSpreadsheet reports whether the content type is an Excel variant
func IsSpreadsheet(contentType string) bool {
	return contentType == ContentTypeXLSX || contentType == ContentTypeXLS
}

// IsDocument reports whether the content type is a Word variant
func IsDocument(contentType string) bool {
	return contentType == ContentTypeDOCX || contentType == ContentTypeDOC
}
