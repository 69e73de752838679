package cart

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/metrics"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	opAdd = "add"
	opSet = "set"

	opRead  = "read"
	opWrite = "write"
)

// Store is the single writer of one shopper's cart. Every mutation writes
// the whole cart back to the key-value store; storage failures are logged
// and never reach the caller.
type Store struct {
	kv      port.KeyValueStore
	key     string
	logger  *log.Entry
	metrics *metrics.Storefront

	mu    sync.Mutex
	lines map[domain.ProductID]int
	// loaded is false while the stored cart could not be read. Such a cart
	// is never written back, so it cannot overwrite lines it has not seen.
	loaded bool
}

// Open loads the cart stored under key. Missing, corrupt or unreadable data
// yields an empty cart; see Loaded for the unreadable case.
func Open(ctx context.Context, kv port.KeyValueStore, key string, logger *log.Entry, m *metrics.Storefront) *Store {
	if logger == nil {
		logger = log.WithField("component", "cart")
	}

	s := &Store{
		kv:      kv,
		key:     key,
		logger:  logger.WithField("key", key),
		metrics: m,
	}
	s.lines, s.loaded = s.load(ctx)

	return s
}

// Loaded reports whether the stored cart was read. A missing or corrupt
// entry counts as read; a failed storage call does not.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loaded
}

func (s *Store) load(ctx context.Context) (map[domain.ProductID]int, bool) {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, port.ErrKeyNotFound) {
		return make(map[domain.ProductID]int), true
	}
	if err != nil {
		s.logger.WithError(err).Warn("cart read failed, starting empty")
		s.metrics.RecordPersistenceFailure(opRead)
		return make(map[domain.ProductID]int), false
	}

	lines, err := Decode(data)
	if err != nil {
		s.logger.WithError(err).Warn("stored cart is corrupt, starting empty")
		s.metrics.RecordPersistenceFailure(opRead)
		return make(map[domain.ProductID]int), true
	}

	return lines, true
}

// reload retries an unread cart before a mutation. Once the read succeeds
// the stored lines replace whatever was kept in memory.
func (s *Store) reload(ctx context.Context) {
	if s.loaded {
		return
	}

	if lines, ok := s.load(ctx); ok {
		s.lines, s.loaded = lines, true
	}
}

// Add changes the quantity of id by delta and returns the new item count.
// A zero delta adds one unit. Increments saturate at MaxStoredQuantity; a
// line that drops to zero or below is removed.
func (s *Store) Add(ctx context.Context, id domain.ProductID, delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		return s.count()
	}
	if delta == 0 {
		delta = 1
	}

	s.reload(ctx)

	qty := s.lines[id]
	if delta > 0 && delta > MaxStoredQuantity-qty {
		qty = MaxStoredQuantity
	} else {
		qty += delta
	}

	if qty <= 0 {
		delete(s.lines, id)
	} else {
		s.lines[id] = qty
	}

	s.metrics.RecordCartMutation(opAdd)
	s.persist(ctx)

	return s.count()
}

// SetQuantity sets the quantity of id clamped to [0, MaxLineQuantity];
// zero removes the line.
func (s *Store) SetQuantity(ctx context.Context, id domain.ProductID, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		return
	}

	s.reload(ctx)

	qty = max(0, min(domain.MaxLineQuantity, qty))
	if qty == 0 {
		delete(s.lines, id)
	} else {
		s.lines[id] = qty
	}

	s.metrics.RecordCartMutation(opSet)
	s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) {
	if !s.loaded {
		s.logger.Warn("cart write skipped, stored cart was not read")
		s.metrics.RecordPersistenceFailure(opWrite)
		return
	}

	data, err := Encode(s.lines)
	if err == nil {
		err = s.kv.Set(ctx, s.key, data)
	}
	if err != nil {
		s.logger.WithError(err).Warn("cart write dropped")
		s.metrics.RecordPersistenceFailure(opWrite)
	}
}

func (s *Store) Quantity(id domain.ProductID) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qty, ok := s.lines[id]
	return qty, ok
}

// Count returns the number of items, the sum of all quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.count()
}

func (s *Store) count() int {
	total := 0
	for _, qty := range s.lines {
		total += qty
	}
	return total
}

// Lines returns the cart lines ordered by product id.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedLines()
}

func (s *Store) sortedLines() []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(s.lines))
	for id, qty := range s.lines {
		lines = append(lines, domain.CartLine{ProductID: id, Quantity: qty})
	}

	slices.SortFunc(lines, func(a, b domain.CartLine) int {
		return strings.Compare(string(a.ProductID), string(b.ProductID))
	})

	return lines
}

// Subtotal sums price times quantity in the catalog currency. Lines whose
// product is no longer in the catalog are skipped.
func (s *Store) Subtotal(catalog domain.Catalog) domain.Money {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.subtotal(catalog)
}

func (s *Store) subtotal(catalog domain.Catalog) domain.Money {
	sum := decimal.Zero
	for id, qty := range s.lines {
		p, ok := catalog.Lookup(id)
		if !ok {
			continue
		}
		sum = sum.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
	}

	return domain.NewMoney(sum, catalog.Currency)
}

// Snapshot returns a consistent view of lines, count and subtotal.
func (s *Store) Snapshot(shopperID string, catalog domain.Catalog) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.Cart{
		ShopperID: shopperID,
		Lines:     s.sortedLines(),
		Count:     s.count(),
		Subtotal:  s.subtotal(catalog),
	}
}
