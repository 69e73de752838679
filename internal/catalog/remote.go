package catalog

import (
	"context"

	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

// RemoteSource reads the catalog from the hosted products table.
//
// It never fails: an unconfigured repository and every repository error
// both report "no data" so the store can fall back to the local document.
type RemoteSource struct {
	repo     port.ProductRepository
	currency currency.Unit
	logger   *log.Entry
}

// NewRemoteSource returns a source for repo; a nil repo means the remote
// backend is not configured.
func NewRemoteSource(repo port.ProductRepository, cur currency.Unit, logger *log.Entry) *RemoteSource {
	if logger == nil {
		logger = log.WithField("component", "catalog")
	}

	return &RemoteSource{
		repo:     repo,
		currency: cur,
		logger:   logger.WithField("source", SourceRemote),
	}
}

func (s *RemoteSource) Configured() bool {
	return s != nil && s.repo != nil
}

func (s *RemoteSource) FetchRemoteProducts(ctx context.Context) (domain.Catalog, bool) {
	if !s.Configured() {
		return domain.Catalog{}, false
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("remote products unavailable")
		return domain.Catalog{}, false
	}

	catalog, err := domain.NewCatalog(s.currency, products)
	if err != nil {
		s.logger.WithError(err).Warn("remote products rejected")
		return domain.Catalog{}, false
	}

	return catalog, true
}
