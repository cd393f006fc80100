package domain

import "github.com/shopspring/decimal"

// MaxQuantity is the largest quantity a single cart line may hold.
const MaxQuantity = 9999

// CartItem is one line of the cart. ID is the identity key.
type CartItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
	Category string          `json:"category,omitempty"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price * quantity for the line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartState is the cart document. Total and ItemCount are derived from Items
// and must only be set through NewCartState.
type CartState struct {
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// NewCartState builds a cart from items and derives its totals.
func NewCartState(items []CartItem) CartState {
	if items == nil {
		items = []CartItem{}
	}
	total := decimal.Zero
	count := 0
	for _, item := range items {
		total = total.Add(item.Subtotal())
		count += item.Quantity
	}
	return CartState{Items: items, Total: total, ItemCount: count}
}

// EmptyCart returns a cart with no items and zero totals.
func EmptyCart() CartState {
	return NewCartState(nil)
}

// Clone returns a deep copy so callers cannot alias the items slice.
func (s CartState) Clone() CartState {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	return CartState{Items: items, Total: s.Total, ItemCount: s.ItemCount}
}

// IsEmpty reports whether the cart has no lines.
func (s CartState) IsEmpty() bool {
	return len(s.Items) == 0
}

// Find returns the index of the line with id, or -1.
func (s CartState) Find(id string) int {
	for i, item := range s.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
