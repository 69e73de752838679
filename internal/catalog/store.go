package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/metrics"
	log "github.com/sirupsen/logrus"
)

const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// RemoteFetcher is the optional remote product source. ok is false when
// there is no remote data for whatever reason.
type RemoteFetcher interface {
	FetchRemoteProducts(ctx context.Context) (catalog domain.Catalog, ok bool)
}

// Source is the fallback product source.
type Source interface {
	Load(ctx context.Context) (domain.Catalog, error)
}

// Store holds the catalog of the session. It loads at most once: Loaded and
// Failed are terminal and later calls to Load return the cached outcome.
type Store struct {
	remote  RemoteFetcher
	local   Source
	logger  *log.Entry
	metrics *metrics.Storefront

	loadMu sync.Mutex

	mu      sync.RWMutex
	state   State
	catalog domain.Catalog
	err     error
}

// NewStore builds a store; remote may be nil.
func NewStore(remote RemoteFetcher, local Source, logger *log.Entry, m *metrics.Storefront) *Store {
	if logger == nil {
		logger = log.WithField("component", "catalog")
	}

	return &Store{
		remote:  remote,
		local:   local,
		logger:  logger,
		metrics: m,
	}
}

func (s *Store) Load(ctx context.Context) (domain.Catalog, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	switch s.state {
	case StateLoaded:
		defer s.mu.Unlock()
		return s.catalog, nil
	case StateFailed:
		defer s.mu.Unlock()
		return domain.Catalog{}, s.err
	}
	s.state = StateLoading
	s.mu.Unlock()

	start := time.Now()
	catalog, source, err := s.fetch(ctx)
	s.metrics.RecordCatalogLoadDuration(time.Since(start))

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateFailed
		s.err = fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
		s.logger.WithError(err).Error("catalog load failed")
		return domain.Catalog{}, s.err
	}

	s.state = StateLoaded
	s.catalog = catalog
	s.logger.WithFields(log.Fields{
		"source":   source,
		"products": catalog.Len(),
		"currency": catalog.Currency.String(),
	}).Info("catalog loaded")

	return catalog, nil
}

func (s *Store) fetch(ctx context.Context) (domain.Catalog, string, error) {
	if s.remote != nil {
		if catalog, ok := s.remote.FetchRemoteProducts(ctx); ok {
			s.metrics.RecordCatalogLoad(SourceRemote, metrics.OutcomeOK)
			return catalog, SourceRemote, nil
		}
		s.metrics.RecordCatalogLoad(SourceRemote, metrics.OutcomeMiss)
	}

	catalog, err := s.local.Load(ctx)
	if err != nil {
		s.metrics.RecordCatalogLoad(SourceLocal, metrics.OutcomeFail)
		return domain.Catalog{}, SourceLocal, fmt.Errorf("local.Load: %w", err)
	}

	s.metrics.RecordCatalogLoad(SourceLocal, metrics.OutcomeOK)
	return catalog, SourceLocal, nil
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Catalog returns the loaded catalog; ok is false until the store is Loaded.
func (s *Store) Catalog() (domain.Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.catalog, s.state == StateLoaded
}

// Err returns the terminal load error of a Failed store.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.err
}
