package session

import (
	"context"
	"sync"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/service/catalog"
)

// sharedCatalog remembers the last catalog fetched from upstream so new
// sessions start with products without a fetch of their own.
type sharedCatalog struct {
	upstream catalog.Source

	mu       sync.RWMutex
	products []domain.Product
}

func (c *sharedCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	list, err := c.upstream.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.products = append([]domain.Product{}, list...)
	c.mu.Unlock()
	return list, nil
}

func (c *sharedCatalog) snapshot() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Product{}, c.products...)
}
