package cart

import (
	"context"
	"encoding/json"
	"errors"

	"skincare-storefront/internal/domain"

	"go.uber.org/zap"
)

// DefaultKey is the persistence key of a cart that is not scoped to a session.
const DefaultKey = "cart"

// KeyFor returns the persistence key of the cart owned by sessionID.
func KeyFor(sessionID string) string {
	if sessionID == "" {
		return DefaultKey
	}
	return DefaultKey + ":" + sessionID
}

type kvRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Store owns the shopping cart of one shopper. It is not safe for concurrent
// use; callers serialize access.
type Store struct {
	repo   kvRepo
	key    string
	logger *zap.Logger
	state  domain.CartState
}

// New returns an empty Store persisting under key. Call Load to restore a saved cart.
func New(repo kvRepo, key string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		repo:   repo,
		key:    key,
		logger: logger.With(zap.String("cart_key", key)),
		state:  domain.EmptyCart(),
	}
}

// Load restores the persisted cart. A missing or unreadable record yields an empty cart.
func (s *Store) Load(ctx context.Context) domain.CartState {
	s.state = domain.EmptyCart()
	if s.repo == nil {
		return s.State()
	}
	raw, err := s.repo.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("load cart failed", zap.Error(err))
		}
		return s.State()
	}
	var saved domain.CartState
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		s.logger.Warn("decode saved cart failed", zap.Error(err))
		return s.State()
	}
	s.state = sanitize(saved.Items)
	return s.State()
}

// State returns a copy of the current cart.
func (s *Store) State() domain.CartState {
	return s.state.Clone()
}

// AddItem adds one unit of item, merging with an existing line of the same id.
func (s *Store) AddItem(ctx context.Context, item domain.CartItem) domain.CartState {
	s.state = addItem(s.state, item)
	s.persist(ctx)
	return s.State()
}

// SetQuantity sets the quantity of line id. Quantities below 1 and unknown ids are ignored.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) domain.CartState {
	next, changed := setQuantity(s.state, id, quantity)
	if !changed {
		return s.State()
	}
	s.state = next
	s.persist(ctx)
	return s.State()
}

// RemoveItem deletes line id if present.
func (s *Store) RemoveItem(ctx context.Context, id string) domain.CartState {
	next, changed := removeItem(s.state, id)
	if !changed {
		return s.State()
	}
	s.state = next
	s.persist(ctx)
	return s.State()
}

// Clear empties the cart and deletes the persisted record.
func (s *Store) Clear(ctx context.Context) domain.CartState {
	s.state = domain.EmptyCart()
	if s.repo != nil {
		if err := s.repo.Remove(ctx, s.key); err != nil {
			s.logger.Warn("remove saved cart failed", zap.Error(err))
		}
	}
	return s.State()
}

func (s *Store) persist(ctx context.Context) {
	if s.repo == nil {
		return
	}
	raw, err := json.Marshal(s.state)
	if err != nil {
		s.logger.Warn("encode cart failed", zap.Error(err))
		return
	}
	if err := s.repo.Set(ctx, s.key, string(raw)); err != nil {
		s.logger.Warn("save cart failed", zap.Error(err))
	}
}
