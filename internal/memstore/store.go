// Package memstore is the in-memory backend of the storage ports. Writes made
// inside WithinTx go to a copy of the state that replaces the live state only
// when the callback succeeds.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type state struct {
	products   map[uuid.UUID]domain.Product
	cartLines  map[uuid.UUID]domain.CartLine
	orders     map[uuid.UUID]domain.Order
	orderLines map[uuid.UUID][]domain.OrderLine
	wishlist   map[uuid.UUID]domain.WishlistItem
	designs    map[uuid.UUID]domain.Design

	lastTime time.Time
}

func newState() *state {
	return &state{
		products:   make(map[uuid.UUID]domain.Product),
		cartLines:  make(map[uuid.UUID]domain.CartLine),
		orders:     make(map[uuid.UUID]domain.Order),
		orderLines: make(map[uuid.UUID][]domain.OrderLine),
		wishlist:   make(map[uuid.UUID]domain.WishlistItem),
		designs:    make(map[uuid.UUID]domain.Design),
	}
}

// clone copies the maps; values are treated as immutable once stored.
func (s *state) clone() *state {
	return &state{
		products:   maps.Clone(s.products),
		cartLines:  maps.Clone(s.cartLines),
		orders:     maps.Clone(s.orders),
		orderLines: maps.Clone(s.orderLines),
		wishlist:   maps.Clone(s.wishlist),
		designs:    maps.Clone(s.designs),
		lastTime:   s.lastTime,
	}
}

// now returns strictly increasing timestamps so that creation order is total.
func (s *state) now(clock func() time.Time) time.Time {
	t := clock().UTC().Truncate(time.Microsecond)
	if !t.After(s.lastTime) {
		t = s.lastTime.Add(time.Microsecond)
	}
	s.lastTime = t
	return t
}

type Option func(*Store)

// WithClock overrides time.Now, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

type Store struct {
	mu    sync.Mutex
	state *state
	clock func() time.Time
}

func New(opts ...Option) *Store {
	s := &Store{
		state: newState(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Carts() port.CartRepository {
	return &cartRepository{v: s.view()}
}

func (s *Store) Orders() port.OrderRepository {
	return &orderRepository{v: s.view()}
}

func (s *Store) Products() port.ProductRepository {
	return &productRepository{v: s.view()}
}

func (s *Store) Wishlist() port.WishlistRepository {
	return &wishlistRepository{v: s.view()}
}

func (s *Store) Designs() port.DesignRepository {
	return &designRepository{v: s.view()}
}

// WithinTx serializes transactions against each other and against
// non-transactional calls.
func (s *Store) WithinTx(ctx context.Context, fn func(tx port.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.state.clone()
	tx := &txStore{v: &view{st: draft, clock: s.clock, locked: true}}

	if err := fn(tx); err != nil {
		return err
	}

	s.state = draft
	return nil
}

// Close drops all data.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = newState()
}

func (s *Store) view() *view {
	return &view{store: s, clock: s.clock}
}

// view gives the repositories access to a state. Outside a transaction it
// locks the owning Store per call; inside one the lock is already held.
type view struct {
	store  *Store
	st     *state
	clock  func() time.Time
	locked bool
}

func (v *view) read(fn func(st *state) error) error {
	if v.locked {
		return fn(v.st)
	}

	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	return fn(v.store.state)
}

// write applies fn to a copy of the state outside transactions so that a
// failing call leaves no partial writes behind.
func (v *view) write(fn func(st *state) error) error {
	if v.locked {
		return fn(v.st)
	}

	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	draft := v.store.state.clone()
	if err := fn(draft); err != nil {
		return err
	}
	v.store.state = draft
	return nil
}

func (v *view) now(st *state) time.Time {
	return st.now(v.clock)
}

type txStore struct {
	v *view
}

func (t *txStore) Carts() port.CartRepository {
	return &cartRepository{v: t.v}
}

func (t *txStore) Orders() port.OrderRepository {
	return &orderRepository{v: t.v}
}

func (t *txStore) Products() port.ProductRepository {
	return &productRepository{v: t.v}
}

func (t *txStore) Wishlist() port.WishlistRepository {
	return &wishlistRepository{v: t.v}
}

func (t *txStore) Designs() port.DesignRepository {
	return &designRepository{v: t.v}
}

// WithinTx joins the enclosing transaction.
func (t *txStore) WithinTx(ctx context.Context, fn func(tx port.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t)
}
