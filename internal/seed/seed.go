package seed

import (
	"context"
	"fmt"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/service/cart"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type kvRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type lineSeed struct {
	ID       string
	Name     string
	Price    int64
	Category string
	Quantity int
}

var demoLines = []lineSeed{
	{ID: "demo-rice-toner", Name: "Rice Water Toner", Price: 850, Category: "Japanese", Quantity: 2},
	{ID: "demo-snail-essence", Name: "Snail Mucin Essence", Price: 1400, Category: "Korean", Quantity: 1},
	{ID: "demo-kumkumadi-oil", Name: "Kumkumadi Face Oil", Price: 1250, Category: "Ayurvedic", Quantity: 1},
}

// Apply stores a demo cart for manual testing under sessionID, generating an
// id when empty. It replaces any cart already saved for that session and
// returns the session id to send as X-Session-ID.
func Apply(ctx context.Context, repo kvRepo, sessionID string, logger *zap.Logger) (string, domain.CartState, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	} else if _, err := uuid.Parse(sessionID); err != nil {
		return "", domain.CartState{}, fmt.Errorf("session id must be a uuid: %w", err)
	}

	store := cart.New(repo, cart.KeyFor(sessionID), logger)
	store.Clear(ctx)
	for _, l := range demoLines {
		store.AddItem(ctx, domain.CartItem{
			ID:       l.ID,
			Name:     l.Name,
			Price:    decimal.NewFromInt(l.Price),
			Category: l.Category,
		})
		if l.Quantity > 1 {
			store.SetQuantity(ctx, l.ID, l.Quantity)
		}
	}

	saved := cart.New(repo, cart.KeyFor(sessionID), logger).Load(ctx)
	if saved.ItemCount != store.State().ItemCount {
		return "", domain.CartState{}, fmt.Errorf("demo cart was not persisted")
	}
	return sessionID, saved, nil
}
