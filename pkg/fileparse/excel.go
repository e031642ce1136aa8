package fileparse

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Expected header names, matched by substring against row 1 of the first
// sheet. Price lists from suppliers come with Persian headers.
const (
	headerName        = "نام محصول"
	headerSerial      = "شماره سریال"
	headerPrice       = "قیمت فروش"
	headerQuantity    = "موجودی"
	headerDiscount    = "تخفیف"
	headerDescription = "توضیحات"
)

type columnIndexes struct {
	name        int
	serial      int
	price       int
	quantity    int
	discount    int
	description int
}

// ParseSpreadsheet reads the first sheet of an Excel upload and converts
// data rows into product records. Row 1 is the header; fully blank rows
// are skipped.
func ParseSpreadsheet(r io.Reader) ([]ProductRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var products []ProductRow
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		product := ProductRow{
			Name:         cellAt(row, cols.name),
			SerialNumber: cellAt(row, cols.serial),
			SalePrice:    parseFloatCell(cellAt(row, cols.price)),
			Quantity:     parseIntCell(cellAt(row, cols.quantity)),
			Discount:     parseFloatCell(cellAt(row, cols.discount)),
			Description:  cellAt(row, cols.description),
		}

		// Rows missing both identity fields carry no product
		if product.Name == "" && product.SerialNumber == "" {
			continue
		}

		products = append(products, product)
	}

	if len(products) == 0 {
		return nil, ErrNoRows
	}

	return products, nil
}

// mapColumns resolves header text to semantic columns by substring match
func mapColumns(headers []string) (columnIndexes, error) {
	cols := columnIndexes{
		name:        findColumn(headers, headerName),
		serial:      findColumn(headers, headerSerial),
		price:       findColumn(headers, headerPrice),
		quantity:    findColumn(headers, headerQuantity),
		discount:    findColumn(headers, headerDiscount),
		description: findColumn(headers, headerDescription),
	}

	if cols.name == -1 || cols.serial == -1 || cols.price == -1 || cols.quantity == -1 {
		return cols, ErrMissingColumns
	}

	return cols, nil
}

func findColumn(headers []string, want string) int {
	for i, h := range headers {
		if strings.Contains(strings.TrimSpace(h), want) {
			return i
		}
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Malformed numbers fall back to zero and get caught by row validation
func parseFloatCell(value string) float64 {
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseIntCell(value string) int {
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return int(parseFloatCell(value))
	}
	return n
}
