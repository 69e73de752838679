package cart

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nikolayk812/storefront-demo/internal/metrics"
	"github.com/nikolayk812/storefront-demo/internal/port"
	log "github.com/sirupsen/logrus"
)

// DefaultRegistrySize bounds the number of carts kept in memory.
const DefaultRegistrySize = 10_000

// Registry hands out one Store per shopper so concurrent requests for the
// same cart share a single writer. The least recently used carts are
// evicted once the registry is full and reload from storage on next use.
type Registry struct {
	kv      port.KeyValueStore
	logger  *log.Entry
	metrics *metrics.Storefront

	mu     sync.Mutex
	stores *lru.Cache[string, *Store]
}

func NewRegistry(kv port.KeyValueStore, logger *log.Entry, m *metrics.Storefront) *Registry {
	r, _ := NewRegistryWithSize(kv, logger, m, DefaultRegistrySize)
	return r
}

// NewRegistryWithSize builds a registry holding at most size carts.
func NewRegistryWithSize(kv port.KeyValueStore, logger *log.Entry, m *metrics.Storefront, size int) (*Registry, error) {
	if logger == nil {
		logger = log.WithField("component", "cart")
	}

	stores, err := lru.New[string, *Store](size)
	if err != nil {
		return nil, fmt.Errorf("lru.New: %w", err)
	}

	return &Registry{
		kv:      kv,
		logger:  logger,
		metrics: m,
		stores:  stores,
	}, nil
}

// Key returns the storage key of a shopper's cart.
func Key(shopperID string) string {
	return fmt.Sprintf("%s:%s", StorageKey, shopperID)
}

// Cart returns the shopper's store. A store whose stored cart could not be
// read is handed out for this call only, so the next call reads again.
func (r *Registry) Cart(ctx context.Context, shopperID string) (*Store, error) {
	if shopperID == "" {
		return nil, fmt.Errorf("shopperID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores.Get(shopperID); ok {
		return s, nil
	}

	s := Open(ctx, r.kv, Key(shopperID), r.logger.WithField("shopper", shopperID), r.metrics)
	if s.Loaded() {
		r.stores.Add(shopperID, s)
	}

	return s, nil
}

// Len returns the number of carts held in memory.
func (r *Registry) Len() int {
	return r.stores.Len()
}
