package catalog_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/nikolayk812/storefront-demo/internal/catalog"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

type fakeRemote struct {
	catalog domain.Catalog
	ok      bool
	calls   atomic.Int32
}

func (f *fakeRemote) FetchRemoteProducts(context.Context) (domain.Catalog, bool) {
	f.calls.Add(1)
	return f.catalog, f.ok
}

type fakeSource struct {
	catalog domain.Catalog
	err     error
	calls   atomic.Int32
	block   chan struct{}
}

func (f *fakeSource) Load(context.Context) (domain.Catalog, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	return f.catalog, f.err
}

func TestStore_Load(t *testing.T) {
	localCatalog := mustCatalog(t, product("local-1", 10))
	remoteCatalog := mustCatalog(t, product("remote-1", 20), product("remote-2", 30))

	tests := []struct {
		name           string
		remote         *fakeRemote
		local          *fakeSource
		wantState      catalog.State
		wantIDs        []domain.ProductID
		wantLocalCalls int32
		wantError      error
	}{
		{
			name:           "remote unconfigured: falls back to local",
			remote:         nil,
			local:          &fakeSource{catalog: localCatalog},
			wantState:      catalog.StateLoaded,
			wantIDs:        []domain.ProductID{"local-1"},
			wantLocalCalls: 1,
		},
		{
			name:           "remote has data: local untouched",
			remote:         &fakeRemote{catalog: remoteCatalog, ok: true},
			local:          &fakeSource{catalog: localCatalog},
			wantState:      catalog.StateLoaded,
			wantIDs:        []domain.ProductID{"remote-1", "remote-2"},
			wantLocalCalls: 0,
		},
		{
			name:           "remote has no data: falls back to local",
			remote:         &fakeRemote{ok: false},
			local:          &fakeSource{catalog: localCatalog},
			wantState:      catalog.StateLoaded,
			wantIDs:        []domain.ProductID{"local-1"},
			wantLocalCalls: 1,
		},
		{
			name:           "remote empty but ok: empty catalog",
			remote:         &fakeRemote{catalog: mustCatalog(t), ok: true},
			local:          &fakeSource{catalog: localCatalog},
			wantState:      catalog.StateLoaded,
			wantIDs:        nil,
			wantLocalCalls: 0,
		},
		{
			name:           "every source fails: failed",
			remote:         &fakeRemote{ok: false},
			local:          &fakeSource{err: errors.New("disk on fire")},
			wantState:      catalog.StateFailed,
			wantLocalCalls: 1,
			wantError:      domain.ErrCatalogUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()

			var remote catalog.RemoteFetcher
			if tt.remote != nil {
				remote = tt.remote
			}

			store := catalog.NewStore(remote, tt.local, nil, metrics.NewWithRegisterer(prometheus.NewRegistry()))
			assert.Equal(t, catalog.StateUnloaded, store.State())

			actual, err := store.Load(ctx)
			assert.Equal(t, tt.wantState, store.State())
			assert.Equal(t, tt.wantLocalCalls, tt.local.calls.Load())

			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				assert.ErrorContains(t, err, "disk on fire")
				assert.Equal(t, err, store.Err())

				_, ok := store.Catalog()
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantIDs, ids(actual))

			cached, ok := store.Catalog()
			require.True(t, ok)
			assert.Equal(t, tt.wantIDs, ids(cached))
		})
	}
}

func TestStore_LoadOnce(t *testing.T) {
	ctx := t.Context()

	remote := &fakeRemote{ok: false}
	local := &fakeSource{catalog: mustCatalog(t, product("a", 1))}
	store := catalog.NewStore(remote, local, nil, nil)

	for range 3 {
		_, err := store.Load(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), remote.calls.Load())
	assert.Equal(t, int32(1), local.calls.Load())
}

func TestStore_FailedIsTerminal(t *testing.T) {
	ctx := t.Context()

	local := &fakeSource{err: errors.New("boom")}
	store := catalog.NewStore(nil, local, nil, nil)

	_, first := store.Load(ctx)
	require.Error(t, first)

	// a later fix of the source is not picked up: no retries
	local.err = nil
	local.catalog = mustCatalog(t, product("a", 1))

	_, second := store.Load(ctx)
	require.Error(t, second)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), local.calls.Load())
	assert.Equal(t, catalog.StateFailed, store.State())
}

func TestStore_ConcurrentLoads(t *testing.T) {
	ctx := t.Context()

	local := &fakeSource{
		catalog: mustCatalog(t, product("a", 1)),
		block:   make(chan struct{}),
	}
	store := catalog.NewStore(nil, local, nil, nil)

	var wg sync.WaitGroup
	results := make([]int, 8)

	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := store.Load(ctx)
			if err == nil {
				results[i] = c.Len()
			}
		}()
	}

	require.Eventually(t, func() bool {
		return store.State() == catalog.StateLoading
	}, waitFor, tick)

	close(local.block)
	wg.Wait()

	assert.Equal(t, int32(1), local.calls.Load())
	for _, n := range results {
		assert.Equal(t, 1, n)
	}
}

func TestRemoteSource_FetchRemoteProducts(t *testing.T) {
	tests := []struct {
		name      string
		repo      *fakeRepository
		wantOK    bool
		wantIDs   []domain.ProductID
		wantWarns int
	}{
		{
			name:   "unconfigured: no data",
			repo:   nil,
			wantOK: false,
		},
		{
			name:    "repository returns products: ok",
			repo:    &fakeRepository{products: []domain.Product{product("x", 5), product("y", 6)}},
			wantOK:  true,
			wantIDs: []domain.ProductID{"x", "y"},
		},
		{
			name:      "repository fails: no data, logged",
			repo:      &fakeRepository{err: errors.New("connection refused")},
			wantOK:    false,
			wantWarns: 1,
		},
		{
			name:      "repository returns duplicates: no data, logged",
			repo:      &fakeRepository{products: []domain.Product{product("x", 5), product("x", 6)}},
			wantOK:    false,
			wantWarns: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := logrustest.NewNullLogger()

			var src *catalog.RemoteSource
			if tt.repo != nil {
				src = catalog.NewRemoteSource(tt.repo, currency.USD, logger.WithField("component", "test"))
			} else {
				src = catalog.NewRemoteSource(nil, currency.USD, logger.WithField("component", "test"))
			}

			actual, ok := src.FetchRemoteProducts(t.Context())
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIDs, ids(actual))
			assert.Len(t, hook.AllEntries(), tt.wantWarns)
		})
	}
}

func TestRemoteSource_NilReceiver(t *testing.T) {
	var src *catalog.RemoteSource

	assert.False(t, src.Configured())

	_, ok := src.FetchRemoteProducts(t.Context())
	assert.False(t, ok)
}

type fakeRepository struct {
	products []domain.Product
	err      error
}

func (f *fakeRepository) ListProducts(context.Context) ([]domain.Product, error) {
	return f.products, f.err
}

func product(id string, price int64) domain.Product {
	return domain.Product{
		ID:       domain.ProductID(id),
		Name:     "Product " + id,
		Category: "Tees",
		Price:    decimal.NewFromInt(price),
	}
}

func mustCatalog(t *testing.T, products ...domain.Product) domain.Catalog {
	t.Helper()

	c, err := domain.NewCatalog(currency.USD, products)
	require.NoError(t, err)
	return c
}

func ids(c domain.Catalog) []domain.ProductID {
	var out []domain.ProductID
	for _, p := range c.Products() {
		out = append(out, p.ID)
	}
	return out
}
