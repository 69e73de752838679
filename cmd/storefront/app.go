package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-demo/internal/cart"
	"github.com/nikolayk812/storefront-demo/internal/catalog"
	"github.com/nikolayk812/storefront-demo/internal/config"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/handler"
	"github.com/nikolayk812/storefront-demo/internal/kv"
	"github.com/nikolayk812/storefront-demo/internal/metrics"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"github.com/nikolayk812/storefront-demo/internal/repository"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func run(ctx context.Context, cfg *config.Config) error {
	logger := log.WithField("component", "storefront")
	m := metrics.New()

	var (
		products      port.ProductRepository
		consultations port.ConsultationRepository
	)
	if cfg.Remote.Configured() {
		pool, err := pgxpool.New(ctx, cfg.Remote.DatabaseURL)
		if err != nil {
			return fmt.Errorf("pgxpool.New: %w", err)
		}
		defer pool.Close()

		products = repository.NewProduct(pool)
		consultations = repository.NewConsultation(pool)
	}

	store, closeStore, err := openKeyValueStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("openKeyValueStore: %w", err)
	}
	defer closeStore()

	var remote catalog.RemoteFetcher
	if products != nil {
		remote = catalog.NewRemoteSource(products, cfg.Catalog.Currency, log.WithField("component", "remote"))
	}
	catalogStore := catalog.NewStore(remote, catalog.NewLocalSource(cfg.Catalog.Path), log.WithField("component", "catalog"), m)

	// A failed catalog is terminal but not fatal: carts and health keep serving.
	if _, err := catalogStore.Load(ctx); err != nil {
		logger.WithError(err).Warn("serving without a catalog")
	}

	carts, err := cart.NewRegistryWithSize(store, log.WithField("component", "cart"), m, cfg.Cart.CacheSize)
	if err != nil {
		return fmt.Errorf("cart.NewRegistryWithSize: %w", err)
	}
	discount := domain.DiscountPolicy{Default: cfg.Catalog.DefaultDiscount}
	httpLogger := log.WithField("component", "http")

	if cfg.LogLevel < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(handler.Handlers{
		Product:      handler.NewProductHandler(catalogStore, discount, httpLogger),
		Cart:         handler.NewCartHandler(carts, catalogStore, httpLogger),
		Consultation: handler.NewConsultationHandler(consultations, httpLogger),
		Health:       handler.NewHealthHandler(catalogStore, cfg.Remote.Configured()),
	}, handler.RouterConfig{
		CheckoutURL:    cfg.CheckoutURL,
		AllowedOrigins: cfg.AllowedOrigins,
	}, httpLogger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("http server listens on %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping http server")
		shutdownHTTP(srv, logger)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func openKeyValueStore(ctx context.Context, cfg *config.Config) (port.KeyValueStore, func(), error) {
	noop := func() {}

	switch cfg.KV.Backend {
	case config.KVBackendMemory:
		return kv.NewMemory(), noop, nil
	case config.KVBackendRedis:
		store, err := kv.NewRedis(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("kv.NewRedis: %w", err)
		}
		return store, func() {
			if err := store.Close(); err != nil {
				log.WithError(err).Warn("redis close")
			}
		}, nil
	default:
		store, err := kv.NewFile(cfg.KV.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("kv.NewFile: %w", err)
		}
		return store, noop, nil
	}
}

func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http server shutdown with error")
	}
}
