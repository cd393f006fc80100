package session

import (
	"context"
	"sync"
	"time"

	"skincare-storefront/internal/service/cart"
	"skincare-storefront/internal/service/catalog"
	"skincare-storefront/internal/service/checkout"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTTL is how long an idle session is kept in memory.
const DefaultTTL = 2 * time.Hour

type kvRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Session is the state of one anonymous shopper. Callers must hold the lock
// while using the stores.
type Session struct {
	ID       string
	Cart     *cart.Store
	Catalog  *catalog.Store
	Checkout *checkout.Controller

	mu sync.Mutex

	// guarded by Manager.mu
	expiresAt time.Time
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Options configures a Manager.
type Options struct {
	TTL           time.Duration
	RedirectAfter time.Duration
	Logger        *zap.Logger
}

// Manager is the registry of live sessions.
type Manager struct {
	kv            kvRepo
	orders        checkout.OrderCreator
	catalog       *sharedCatalog
	ttl           time.Duration
	redirectAfter time.Duration
	logger        *zap.Logger
	now           func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(kv kvRepo, products catalog.Source, orders checkout.OrderCreator, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		kv:            kv,
		orders:        orders,
		catalog:       &sharedCatalog{upstream: products},
		ttl:           ttl,
		redirectAfter: opts.RedirectAfter,
		logger:        logger,
		now:           time.Now,
		sessions:      make(map[string]*Session),
	}
}

// Warm fetches the catalog once so the first sessions start populated.
func (m *Manager) Warm(ctx context.Context) error {
	list, err := m.catalog.ListProducts(ctx)
	if err != nil {
		m.logger.Warn("catalog warm-up failed", zap.Error(err))
		return err
	}
	m.logger.Info("catalog loaded", zap.Int("count", len(list)))
	return nil
}

// Source is the catalog source sessions refresh from. Successful fetches
// also update the catalog handed to new sessions.
func (m *Manager) Source() catalog.Source {
	return m.catalog
}

// Get returns the live session for id. Unknown, expired or malformed ids get
// a new session; created reports whether that happened. A new session with a
// well-formed id restores the cart persisted under it.
func (m *Manager) Get(ctx context.Context, id string) (sess *Session, created bool) {
	now := m.now()
	if _, err := uuid.Parse(id); err != nil {
		id = ""
	}

	if id != "" {
		m.mu.Lock()
		s, ok := m.sessions[id]
		if ok && now.Before(s.expiresAt) {
			s.expiresAt = now.Add(m.ttl)
			m.mu.Unlock()
			return s, false
		}
		m.mu.Unlock()
	} else {
		id = uuid.NewString()
	}

	s := m.newSession(ctx, id, now)
	m.mu.Lock()
	if existing, ok := m.sessions[id]; ok && now.Before(existing.expiresAt) {
		m.mu.Unlock()
		return existing, false
	}
	m.sessions[id] = s
	m.mu.Unlock()
	m.logger.Debug("session created", zap.String("session_id", id))
	return s, true
}

// Sweep drops sessions idle past their TTL and reports how many were removed.
// Persisted carts survive and are restored if the id returns.
func (m *Manager) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if !now.Before(s.expiresAt) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Debug("expired sessions removed", zap.Int("count", n))
			}
		}
	}
}

// Len reports the number of sessions held.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) newSession(ctx context.Context, id string, now time.Time) *Session {
	logger := m.logger.With(zap.String("session_id", id))
	c := cart.New(m.kv, cart.KeyFor(id), logger)
	c.Load(ctx)
	products := catalog.New(logger)
	products.SetProducts(m.catalog.snapshot())
	return &Session{
		ID:        id,
		Cart:      c,
		Catalog:   products,
		Checkout:  checkout.New(c, m.orders, m.redirectAfter, logger),
		expiresAt: now.Add(m.ttl),
	}
}
