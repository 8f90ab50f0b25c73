// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-site/internal/pkg/kv"
)

// DefaultKey is the fixed identifier of the persisted cart slot
const DefaultKey = "cg_cart_v1"

// DefaultItemName is used for items added without a display name
const DefaultItemName = "Dish"

// Recorder receives store outcomes, typically for metrics
type Recorder interface {
	ObserveMutation(op string, err error)
	ObserveLoadFailure(reason string)
}

// Store owns the authoritative cart for the running instance. The persisted
// slot is the source of truth; other writers to the same slot follow
// last-writer-wins at whole-cart granularity.
type Store struct {
	mu sync.Mutex

	backend     kv.Store
	key         string
	defaultName string
	renderer    *Renderer
	validate    *validator.Validate
	recorder    Recorder
	log         *logrus.Entry

	cart  Cart
	views []View
}

// Option configures a Store
type Option func(*Store)

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithDefaultItemName overrides the name given to unnamed items
func WithDefaultItemName(name string) Option {
	return func(s *Store) { s.defaultName = name }
}

// WithRenderer sets the renderer used to build view models for views
func WithRenderer(r *Renderer) Option {
	return func(s *Store) { s.renderer = r }
}

// WithViews registers views re-rendered after every save and reload
func WithViews(views ...View) Option {
	return func(s *Store) { s.views = append(s.views, views...) }
}

// WithRecorder sets the outcome recorder
func WithRecorder(r Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

// WithLogger sets the logger
func WithLogger(l *logrus.Logger) Option {
	return func(s *Store) { s.log = logrus.NewEntry(l) }
}

// NewStore creates a cart store persisting into backend
func NewStore(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		backend:     backend,
		key:         DefaultKey,
		defaultName: DefaultItemName,
		renderer:    defaultRenderer,
		validate:    validator.New(),
		log:         logrus.NewEntry(logrus.StandardLogger()),
		cart:        Cart{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("storage_key", s.key)
	return s
}

// Key returns the storage key of the cart slot
func (s *Store) Key() string {
	return s.key
}

// Cart returns a copy of the in-memory cart
func (s *Store) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Load reads the persisted cart. The returned cart is always usable: a
// missing slot yields an empty cart and nil, an unreadable or corrupt slot
// yields an empty cart and an error wrapping ErrLoadFailed or ErrCorruptCart.
func (s *Store) Load(ctx context.Context) (Cart, error) {
	raw, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return Cart{}, nil
	}
	if err != nil {
		s.log.WithError(err).Warn("Failed to read persisted cart, using empty cart")
		s.observeLoadFailure("read")
		return Cart{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	c, err := decode(raw)
	if err != nil {
		s.log.WithError(err).WithField("data_length", len(raw)).Warn("Persisted cart is corrupt, using empty cart")
		s.observeLoadFailure("parse")
		return Cart{}, fmt.Errorf("%w: %w", ErrCorruptCart, err)
	}
	return c, nil
}

// Reload re-reads the persisted slot into memory and re-renders the views.
// Call it when the page regains focus or another writer changed the slot.
func (s *Store) Reload(ctx context.Context) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = s.current(ctx)
	s.renderViews()
	return s.cart.Clone()
}

// Save overwrites the persisted slot with c and re-renders the views. When
// the write fails nothing changes and the error wraps ErrSaveFailed.
func (s *Store) Save(ctx context.Context, c Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.save(ctx, normalize(c))
	s.observeMutation("save", err)
	return err
}

// AddItem adds item to the cart. An existing entry with the same id has its
// quantity increased by item.Quantity, otherwise item is appended.
func (s *Store) AddItem(ctx context.Context, item LineItem) (Cart, error) {
	item.ID = strings.TrimSpace(item.ID)
	if strings.TrimSpace(item.Name) == "" {
		item.Name = s.defaultName
	}
	if err := s.validate.Struct(item); err != nil {
		s.observeMutation("add", ErrInvalidItem)
		return nil, fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	return s.mutate(ctx, "add", func(c Cart) (Cart, bool, error) {
		if i := c.Index(item.ID); i >= 0 {
			if c[i].Quantity > math.MaxInt-item.Quantity {
				return c, false, fmt.Errorf("%w: quantity of %q would overflow", ErrInvalidItem, item.ID)
			}
			c[i].Quantity += item.Quantity
			return c, true, nil
		}
		return append(c, item), true, nil
	})
}

// SetQuantity replaces the quantity of the entry with id. Quantities below
// zero are treated as zero, and zero removes the entry. An unknown id is a
// no-op and nothing is written.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) (Cart, error) {
	if quantity < 0 {
		quantity = 0
	}

	return s.mutate(ctx, "set_quantity", func(c Cart) (Cart, bool, error) {
		i := c.Index(id)
		if i < 0 {
			return c, false, nil
		}
		return c.withQuantity(i, quantity), true, nil
	})
}

// StepQuantity applies a stepper press to the entry with id in one
// read-modify-write cycle: the persisted quantity is moved by delta and
// clamped by q. Reaching zero removes the entry. An unknown id returns
// ErrNotInCart and nothing is written.
func (s *Store) StepQuantity(ctx context.Context, id string, delta int, q QuantitySanitizer) (Cart, error) {
	return s.mutate(ctx, "step_quantity", func(c Cart) (Cart, bool, error) {
		i := c.Index(id)
		if i < 0 {
			return c, false, fmt.Errorf("%w: %q", ErrNotInCart, id)
		}
		return c.withQuantity(i, q.Step(strconv.Itoa(c[i].Quantity), delta)), true, nil
	})
}

// RemoveItem drops the entry with id. The cart is written even when id is absent.
func (s *Store) RemoveItem(ctx context.Context, id string) (Cart, error) {
	return s.mutate(ctx, "remove", func(c Cart) (Cart, bool, error) {
		if i := c.Index(id); i >= 0 {
			c = append(c[:i], c[i+1:]...)
		}
		return c, true, nil
	})
}

// Watch reloads the cart every time another writer changes the slot, until
// ctx is done. Backends that cannot report writes return ErrWatchUnsupported.
func (s *Store) Watch(ctx context.Context) error {
	watcher, ok := s.backend.(kv.Watcher)
	if !ok {
		return ErrWatchUnsupported
	}

	changes, err := watcher.Watch(ctx, s.key)
	if err != nil {
		return fmt.Errorf("failed to watch cart slot: %w", err)
	}

	s.log.Info("Watching cart slot for external changes")
	for range changes {
		c := s.Reload(ctx)
		s.log.WithField("items", len(c)).Debug("Cart reloaded after external change")
	}
	return ctx.Err()
}

// mutate runs one read-modify-write cycle under the store lock. fn receives a
// private copy of the current cart and reports whether it changed anything.
// When fn fails nothing is written.
func (s *Store) mutate(ctx context.Context, op string, fn func(Cart) (Cart, bool, error)) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed, err := fn(s.current(ctx).Clone())
	if err != nil {
		s.observeMutation(op, err)
		return s.cart.Clone(), err
	}
	if !changed {
		s.observeMutation(op, nil)
		return s.cart.Clone(), nil
	}

	if err := s.save(ctx, next); err != nil {
		s.observeMutation(op, err)
		return s.cart.Clone(), err
	}

	s.observeMutation(op, nil)
	s.log.WithFields(logrus.Fields{
		"op":    op,
		"items": len(next),
	}).Debug("Cart updated")
	return s.cart.Clone(), nil
}

// current returns the persisted cart. A corrupt slot reads as empty; a
// backend that cannot be reached falls back to the in-memory copy so a
// transient outage does not wipe the cart on the next write.
func (s *Store) current(ctx context.Context) Cart {
	c, err := s.Load(ctx)
	if errors.Is(err, ErrLoadFailed) {
		return s.cart.Clone()
	}
	return c
}

// save must be called with s.mu held.
func (s *Store) save(ctx context.Context, c Cart) error {
	if c == nil {
		c = Cart{}
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	if err := s.backend.Set(ctx, s.key, data); err != nil {
		s.log.WithError(err).Error("Failed to save cart")
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	s.cart = c.Clone()
	s.renderViews()
	return nil
}

// renderViews must be called with s.mu held.
func (s *Store) renderViews() {
	if len(s.views) == 0 {
		return
	}
	vm := s.renderer.Render(s.cart)
	for _, v := range s.views {
		v.Render(vm)
	}
}

func (s *Store) observeMutation(op string, err error) {
	if s.recorder != nil {
		s.recorder.ObserveMutation(op, err)
	}
}

func (s *Store) observeLoadFailure(reason string) {
	if s.recorder != nil {
		s.recorder.ObserveLoadFailure(reason)
	}
}

func decode(raw []byte) (Cart, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return Cart{}, nil
	}

	var c Cart
	if err := json.Unmarshal([]byte(trimmed), &c); err != nil {
		return nil, err
	}
	return normalize(c), nil
}
