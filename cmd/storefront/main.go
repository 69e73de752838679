package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/storefront-demo/internal/config"
	log "github.com/sirupsen/logrus"
)

func setupLogger(level log.Level) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(level)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config.Load")
	}
	setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":  cfg.HTTPAddr,
		"kv_backend": cfg.KV.Backend,
		"remote":     cfg.Remote.Configured(),
	}).Info("starting storefront")

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("storefront stopped with error")
	}

	log.Info("storefront stopped")
}
