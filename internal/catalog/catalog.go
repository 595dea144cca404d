package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/fjod/go_pos/internal/domain"
	"golang.org/x/sync/singleflight"
)

var ErrProductNotFound = errors.New("product not found")

// Source supplies the read-only product and coupon lists. The backend is an
// external collaborator; the terminal never writes through this interface.
type Source interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Coupons(ctx context.Context) ([]domain.Coupon, error)
}

// Session is one fetch of the catalog, indexed for lookups. Scanner input
// arrives as a SKU string, so both ID and SKU indexes are kept.
type Session struct {
	products []domain.Product
	byID     map[string]*domain.Product
	bySKU    map[string]*domain.Product
	coupons  []domain.Coupon
}

func newSession(products []domain.Product, coupons []domain.Coupon) *Session {
	s := &Session{
		products: products,
		byID:     make(map[string]*domain.Product, len(products)),
		bySKU:    make(map[string]*domain.Product, len(products)),
		coupons:  coupons,
	}
	for i := range s.products {
		p := &s.products[i]
		s.byID[p.ID] = p
		s.bySKU[p.SKU] = p
	}
	return s
}

// Products returns a copy of every product in the session. The session's
// own slice backs the lookup indexes and must stay untouched.
func (s *Session) Products() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Coupons returns a copy of every coupon in the session.
func (s *Session) Coupons() []domain.Coupon {
	out := make([]domain.Coupon, len(s.coupons))
	copy(out, s.coupons)
	return out
}

// ByID looks a product up by its backend ID.
func (s *Session) ByID(id string) (*domain.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, ErrProductNotFound
}

// BySKU looks a product up by the scanned barcode/SKU.
func (s *Session) BySKU(sku string) (*domain.Product, error) {
	if p, ok := s.bySKU[sku]; ok {
		return p, nil
	}
	return nil, ErrProductNotFound
}

// Catalog loads the product and coupon lists once per session and serves
// them from memory afterwards. Refreshing replaces the session but leaves
// the stock ledger's deltas alone: a fresher server stock figure does not
// invalidate local depletion that has not synced yet.
type Catalog struct {
	source Source
	sfg    singleflight.Group // Collapses concurrent first loads

	mu      sync.RWMutex
	session *Session
}

func New(source Source) *Catalog {
	return &Catalog{source: source}
}

// Load returns the current session, fetching it on first use. Concurrent
// callers during the first fetch share one round trip.
func (c *Catalog) Load(ctx context.Context) (*Session, error) {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()
	if session != nil {
		return session, nil
	}

	v, err, _ := c.sfg.Do("load", func() (interface{}, error) {
		c.mu.RLock()
		existing := c.session
		c.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}
		return c.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// Refresh refetches the catalog unconditionally.
func (c *Catalog) Refresh(ctx context.Context) (*Session, error) {
	return c.fetch(ctx)
}

func (c *Catalog) fetch(ctx context.Context) (*Session, error) {
	products, err := c.source.Products(ctx)
	if err != nil {
		return nil, err
	}
	coupons, err := c.source.Coupons(ctx)
	if err != nil {
		return nil, err
	}

	session := newSession(products, coupons)
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	return session, nil
}
