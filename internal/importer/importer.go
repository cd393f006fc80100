package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"skincare-storefront/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CSVImporter reads catalog CSV exports into products.
//
// Expected headers: products_serial_id, product_id, product_name, category,
// price, stock, rating, description, image_url, product_type, skin_type.
// Tag cells hold one or more tags separated by ";". A row without a
// product_id continues the previous product and only contributes tags.
type CSVImporter struct {
	reader *csv.Reader
}

func NewCSVImporter(r io.Reader) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr}
}

// Run parses every row and returns the products in file order.
func (i *CSVImporter) Run(ctx context.Context) ([]domain.Product, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *domain.Product
		products []domain.Product
		line     = 1
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		if pick(record, index, "product_id") == "" {
			// Continuation rows add tags to the current product.
			if current != nil {
				current.ProductType = appendTags(current.ProductType, pick(record, index, "product_type"))
				current.SkinType = appendTags(current.SkinType, pick(record, index, "skin_type"))
			}
			continue
		}

		if current != nil {
			products = append(products, *current)
		}
		p, err := parseRow(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		current = p
	}

	if current != nil {
		products = append(products, *current)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// FileSource serves the catalog from a CSV file, re-reading it on every call.
type FileSource struct {
	Path   string
	Logger *zap.Logger
}

func (s FileSource) ListProducts(ctx context.Context) ([]domain.Product, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()

	products, err := NewCSVImporter(f).Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", s.Path, err)
	}
	if s.Logger != nil {
		s.Logger.Debug("catalog csv loaded", zap.String("path", s.Path), zap.Int("count", len(products)))
	}
	return products, nil
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	p := &domain.Product{
		ID:          pick(record, index, "product_id"),
		Name:        pick(record, index, "product_name"),
		Category:    pick(record, index, "category"),
		Description: pick(record, index, "description"),
		ImageURL:    pick(record, index, "image_url"),
		ProductType: appendTags(nil, pick(record, index, "product_type")),
		SkinType:    appendTags(nil, pick(record, index, "skin_type")),
	}
	if p.Name == "" {
		return nil, fmt.Errorf("product %q: missing product_name", p.ID)
	}

	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("product %q: invalid price: %w", p.ID, err)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("product %q: negative price", p.ID)
	}
	p.Price = price

	if v := pick(record, index, "products_serial_id"); v != "" {
		if p.SerialID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("product %q: invalid products_serial_id: %w", p.ID, err)
		}
	}
	if v := pick(record, index, "stock"); v != "" {
		if p.Stock, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("product %q: invalid stock: %w", p.ID, err)
		}
	}
	if v := pick(record, index, "rating"); v != "" {
		if p.Rating, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("product %q: invalid rating: %w", p.ID, err)
		}
	}
	return p, nil
}

func appendTags(tags domain.TagSet, cell string) domain.TagSet {
	for _, tag := range strings.Split(cell, ";") {
		tag = strings.TrimSpace(tag)
		if tag == "" || tags.Contains(tag) {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
