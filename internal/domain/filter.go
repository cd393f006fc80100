package domain

import "github.com/shopspring/decimal"

// Sort orders accepted by FilterCriteria.SortBy.
const (
	SortNone          = ""
	SortPriceLowHigh  = "priceLowHigh"
	SortPriceHighLow  = "priceHighLow"
	SortRatingHighLow = "ratingHighLow"
)

// IsSortOrder reports whether s is one of the accepted sort orders.
func IsSortOrder(s string) bool {
	switch s {
	case SortNone, SortPriceLowHigh, SortPriceHighLow, SortRatingHighLow:
		return true
	}
	return false
}

// PriceRange is an inclusive [min, max] bound, encoded as a two element JSON array.
type PriceRange [2]decimal.Decimal

// NewPriceRange builds a range from integer bounds.
func NewPriceRange(min, max int64) PriceRange {
	return PriceRange{decimal.NewFromInt(min), decimal.NewFromInt(max)}
}

func (r PriceRange) Min() decimal.Decimal { return r[0] }
func (r PriceRange) Max() decimal.Decimal { return r[1] }

// Contains reports whether price lies within the range, bounds included.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r[0]) && price.LessThanOrEqual(r[1])
}

// FilterCriteria selects the displayed subset of the catalog.
// Category, MinRating, InStockOnly and SortBy are neutral at their defaults.
type FilterCriteria struct {
	PriceRange  PriceRange `json:"priceRange"`
	SearchTerm  string     `json:"searchTerm"`
	Tags        []string   `json:"tags"`
	Category    string     `json:"category"`
	MinRating   float64    `json:"rating"`
	InStockOnly bool       `json:"inStockOnly"`
	SortBy      string     `json:"sortBy"`
}

// DefaultFilterCriteria matches every product priced between 0 and 10000.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		PriceRange: NewPriceRange(0, 10000),
		Tags:       []string{},
		Category:   CategoryAll,
	}
}

// Clone returns a copy that does not share the tags slice.
func (c FilterCriteria) Clone() FilterCriteria {
	out := c
	out.Tags = append([]string{}, c.Tags...)
	return out
}

// FilterUpdate carries a partial change to FilterCriteria; nil fields are left as is.
type FilterUpdate struct {
	PriceRange  *PriceRange `json:"priceRange,omitempty"`
	SearchTerm  *string     `json:"searchTerm,omitempty"`
	Tags        *[]string   `json:"tags,omitempty"`
	Category    *string     `json:"category,omitempty"`
	MinRating   *float64    `json:"rating,omitempty"`
	InStockOnly *bool       `json:"inStockOnly,omitempty"`
	SortBy      *string     `json:"sortBy,omitempty"`
}
