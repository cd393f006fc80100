package catalog

import (
	"sort"
	"strings"

	"skincare-storefront/internal/domain"
)

// Apply returns the products matching criteria, in catalog order unless
// criteria.SortBy asks otherwise. It does not modify products.
func Apply(products []domain.Product, criteria domain.FilterCriteria) []domain.Product {
	keyword := strings.ToLower(criteria.SearchTerm)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, criteria, keyword) {
			out = append(out, p)
		}
	}
	sortProducts(out, criteria.SortBy)
	return out
}

func matches(p domain.Product, c domain.FilterCriteria, keyword string) bool {
	return matchPrice(p, c) &&
		matchKeyword(p, keyword) &&
		matchTags(p, c.Tags) &&
		matchCategory(p, c.Category) &&
		p.Rating >= c.MinRating &&
		(!c.InStockOnly || p.Stock > 0)
}

func matchPrice(p domain.Product, c domain.FilterCriteria) bool {
	return c.PriceRange.Contains(p.Price)
}

func matchKeyword(p domain.Product, keyword string) bool {
	if keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), keyword) ||
		strings.Contains(strings.ToLower(p.Description), keyword)
}

// matchTags requires every active tag on the product.
func matchTags(p domain.Product, active []string) bool {
	for _, tag := range active {
		if !p.ProductType.Contains(tag) && !p.SkinType.Contains(tag) {
			return false
		}
	}
	return true
}

func matchCategory(p domain.Product, category string) bool {
	if category == "" || category == domain.CategoryAll {
		return true
	}
	return strings.EqualFold(p.Category, category)
}

func sortProducts(products []domain.Product, sortBy string) {
	switch sortBy {
	case domain.SortPriceLowHigh:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price.LessThan(products[j].Price) })
	case domain.SortPriceHighLow:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price.GreaterThan(products[j].Price) })
	case domain.SortRatingHighLow:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	}
}

// replaceDimension swaps the tags of one vocabulary for selected, keeping the
// rest of active. Selected tags outside vocab are dropped.
func replaceDimension(active, selected, vocab []string) []string {
	out := make([]string, 0, len(active)+len(selected))
	seen := make(map[string]bool, len(active)+len(selected))
	for _, tag := range active {
		if domain.InVocabulary(vocab, tag) || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	for _, tag := range selected {
		if !domain.InVocabulary(vocab, tag) || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func dedupe(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
