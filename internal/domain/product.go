package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers in both directions.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is the read-only catalog entity served by the external API.
type Product struct {
	SerialID    int64           `json:"products_serial_id"`
	ID          string          `json:"product_id"`
	Name        string          `json:"product_name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Rating      float64         `json:"rating"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url,omitempty"`
	ProductType TagSet          `json:"product_type"`
	SkinType    TagSet          `json:"skin_type"`
}

// Tags returns the union of the product-type and skin-type tags.
func (p Product) Tags() []string {
	tags := make([]string, 0, len(p.ProductType)+len(p.SkinType))
	tags = append(tags, p.ProductType...)
	return append(tags, p.SkinType...)
}

// CartItem converts the product into a cart line with quantity 1.
func (p Product) CartItem() CartItem {
	return CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.ImageURL,
		Category: p.Category,
		Quantity: 1,
	}
}

// TagSet is a list of tags that decodes from either a JSON string or a JSON array.
type TagSet []string

// UnmarshalJSON accepts "Dry", ["Dry","Oily"] or null.
func (t *TagSet) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		*t = nil
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("decode tag list: %w", err)
		}
		*t = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("decode tag: %w", err)
	}
	if single == "" {
		*t = nil
		return nil
	}
	*t = TagSet{single}
	return nil
}

// Contains reports whether tag is in the set.
func (t TagSet) Contains(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}
