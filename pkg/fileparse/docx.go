package fileparse

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// linePattern extracts "name serial price quantity" from one document line.
// TODO: the format of supplier Word files is undocumented; this pattern only
// matches the four-token layout seen so far.
var linePattern = regexp.MustCompile(`(.+?)\s+(\w+)\s+(\d+)\s+(\d+)`)

// ParseDocument extracts raw text from a .docx upload and applies the
// per-line pattern match to build product records
func ParseDocument(r io.Reader) ([]ProductRow, error) {
	text, err := extractText(r)
	if err != nil {
		return nil, err
	}

	var products []ProductRow
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		match := linePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		price, _ := strconv.ParseFloat(match[3], 64)
		quantity, _ := strconv.Atoi(match[4])

		products = append(products, ProductRow{
			Name:         strings.TrimSpace(match[1]),
			SerialNumber: match[2],
			SalePrice:    price,
			Quantity:     quantity,
		})
	}

	if len(products) == 0 {
		return nil, ErrNoRows
	}

	return products, nil
}

// docx XML elements we care about: paragraphs and their text runs
type docxDocument struct {
	Body docxBody `xml:"body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"p"`
}

type docxParagraph struct {
	Texts []string `xml:"r>t"`
}

// extractText pulls paragraph text out of word/document.xml inside the
// docx zip container, one line per paragraph
func extractText(r io.Reader) (string, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFile, err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", ErrUnsupportedFile
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	var doc docxDocument
	if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFile, err)
	}

	var lines []string
	for _, p := range doc.Body.Paragraphs {
		lines = append(lines, strings.Join(p.Texts, ""))
	}

	return strings.Join(lines, "\n"), nil
}
