package catalog

import (
	"context"
	"fmt"

	"skincare-storefront/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Source fetches the full catalog from wherever products live.
type Source interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Store holds one shopper's copy of the catalog and the filtered view derived
// from it. It is not safe for concurrent use; callers serialize access.
type Store struct {
	products []domain.Product
	filtered []domain.Product
	criteria domain.FilterCriteria
	selected string
	logger   *zap.Logger
}

// New returns an empty Store with default criteria.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		products: []domain.Product{},
		filtered: []domain.Product{},
		criteria: domain.DefaultFilterCriteria(),
		logger:   logger,
	}
}

// SetProducts replaces the catalog and shows all of it with no active filters.
func (s *Store) SetProducts(list []domain.Product) []domain.Product {
	s.products = append([]domain.Product{}, list...)
	s.criteria = domain.DefaultFilterCriteria()
	s.filtered = append([]domain.Product{}, s.products...)
	return s.Filtered()
}

// Refresh fetches the catalog from src. On failure the current catalog is kept.
func (s *Store) Refresh(ctx context.Context, src Source) ([]domain.Product, error) {
	list, err := src.ListProducts(ctx)
	if err != nil {
		s.logger.Warn("catalog refresh failed", zap.Error(err))
		return s.Filtered(), fmt.Errorf("refresh catalog: %w", err)
	}
	s.logger.Debug("catalog refreshed", zap.Int("count", len(list)))
	return s.SetProducts(list), nil
}

// SetFilters merges the supplied fields into the criteria and recomputes the view.
func (s *Store) SetFilters(update domain.FilterUpdate) []domain.Product {
	c := s.criteria.Clone()
	if update.PriceRange != nil {
		c.PriceRange = *update.PriceRange
	}
	if update.SearchTerm != nil {
		c.SearchTerm = *update.SearchTerm
	}
	if update.Tags != nil {
		c.Tags = dedupe(*update.Tags)
	}
	if update.Category != nil {
		c.Category = *update.Category
	}
	if update.MinRating != nil {
		c.MinRating = *update.MinRating
	}
	if update.InStockOnly != nil {
		c.InStockOnly = *update.InStockOnly
	}
	if update.SortBy != nil {
		c.SortBy = *update.SortBy
	}
	return s.apply(c)
}

// SetSearchTerm changes only the keyword.
func (s *Store) SetSearchTerm(term string) []domain.Product {
	return s.SetFilters(domain.FilterUpdate{SearchTerm: &term})
}

// SetProductTypeTags replaces the active product-type tags, keeping skin-type tags.
func (s *Store) SetProductTypeTags(tags []string) []domain.Product {
	c := s.criteria.Clone()
	c.Tags = replaceDimension(c.Tags, tags, domain.ProductTypeTags)
	return s.apply(c)
}

// SetSkinTypeTags replaces the active skin-type tags, keeping product-type tags.
func (s *Store) SetSkinTypeTags(tags []string) []domain.Product {
	c := s.criteria.Clone()
	c.Tags = replaceDimension(c.Tags, tags, domain.SkinTypeTags)
	return s.apply(c)
}

// UpsertProduct replaces the product with the same serial id or appends a new one.
// A zero serial id always means a new product, which gets the next serial id.
// A missing product id is kept from the replaced product or generated.
func (s *Store) UpsertProduct(p domain.Product) domain.Product {
	if p.SerialID != 0 {
		for i := range s.products {
			if s.products[i].SerialID == p.SerialID {
				if p.ID == "" {
					p.ID = s.products[i].ID
				}
				s.products[i] = p
				s.apply(s.criteria)
				return p
			}
		}
	} else {
		p.SerialID = s.nextSerialID()
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.products = append(s.products, p)
	s.apply(s.criteria)
	return p
}

func (s *Store) nextSerialID() int64 {
	var last int64
	for _, p := range s.products {
		last = max(last, p.SerialID)
	}
	return last + 1
}

// DeleteProduct removes the product with serialID. It reports whether one was removed.
func (s *Store) DeleteProduct(serialID int64) bool {
	for i := range s.products {
		if s.products[i].SerialID != serialID {
			continue
		}
		if s.products[i].ID == s.selected {
			s.selected = ""
		}
		s.products = append(s.products[:i:i], s.products[i+1:]...)
		s.apply(s.criteria)
		return true
	}
	return false
}

// Product looks up a catalog product by its product id.
func (s *Store) Product(id string) (domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

// Select marks product id as the one being viewed.
func (s *Store) Select(id string) (domain.Product, error) {
	p, err := s.Product(id)
	if err != nil {
		return domain.Product{}, err
	}
	s.selected = id
	return p, nil
}

// Selected returns the product being viewed, if any.
func (s *Store) Selected() (domain.Product, bool) {
	if s.selected == "" {
		return domain.Product{}, false
	}
	p, err := s.Product(s.selected)
	return p, err == nil
}

// Products returns a copy of the full catalog.
func (s *Store) Products() []domain.Product {
	return append([]domain.Product{}, s.products...)
}

// Filtered returns a copy of the current filtered view.
func (s *Store) Filtered() []domain.Product {
	return append([]domain.Product{}, s.filtered...)
}

// Criteria returns a copy of the active criteria.
func (s *Store) Criteria() domain.FilterCriteria {
	return s.criteria.Clone()
}

func (s *Store) apply(c domain.FilterCriteria) []domain.Product {
	s.criteria = c
	s.filtered = Apply(s.products, c)
	return s.Filtered()
}

// Categories returns the category filter options, "All" first.
func (s *Store) Categories() []string {
	return append([]string{}, domain.Categories...)
}
