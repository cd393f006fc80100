package cart

import "skincare-storefront/internal/domain"

// The reducers below never mutate their input; each returns a fresh state
// whose totals come from domain.NewCartState.

func addItem(state domain.CartState, item domain.CartItem) domain.CartState {
	items := copyItems(state.Items)
	if idx := state.Find(item.ID); idx >= 0 {
		if items[idx].Quantity >= domain.MaxQuantity {
			return state
		}
		items[idx].Quantity++
		return domain.NewCartState(items)
	}
	item.Quantity = 1
	return domain.NewCartState(append(items, item))
}

func setQuantity(state domain.CartState, id string, quantity int) (domain.CartState, bool) {
	if quantity < 1 || quantity > domain.MaxQuantity {
		return state, false
	}
	idx := state.Find(id)
	if idx < 0 {
		return state, false
	}
	items := copyItems(state.Items)
	items[idx].Quantity = quantity
	return domain.NewCartState(items), true
}

func removeItem(state domain.CartState, id string) (domain.CartState, bool) {
	idx := state.Find(id)
	if idx < 0 {
		return state, false
	}
	items := make([]domain.CartItem, 0, len(state.Items)-1)
	items = append(items, state.Items[:idx]...)
	items = append(items, state.Items[idx+1:]...)
	return domain.NewCartState(items), true
}

// sanitize drops lines that violate the cart invariants and merges duplicate ids.
func sanitize(items []domain.CartItem) domain.CartState {
	out := make([]domain.CartItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		if item.ID == "" || item.Quantity < 1 || item.Price.IsNegative() {
			continue
		}
		item.Quantity = min(item.Quantity, domain.MaxQuantity)
		if pos, ok := index[item.ID]; ok {
			out[pos].Quantity = min(out[pos].Quantity+item.Quantity, domain.MaxQuantity)
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return domain.NewCartState(out)
}

func copyItems(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items), len(items)+1)
	copy(out, items)
	return out
}
