// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-site/internal/config"
	"github.com/your-org/restaurant-site/internal/domain/cart"
	"github.com/your-org/restaurant-site/internal/domain/contact"
	"github.com/your-org/restaurant-site/internal/domain/gallery"
	"github.com/your-org/restaurant-site/internal/domain/menu"
	"github.com/your-org/restaurant-site/internal/infrastructure/storage"
	"github.com/your-org/restaurant-site/internal/interfaces/http"
	"github.com/your-org/restaurant-site/internal/interfaces/http/handlers"
	"github.com/your-org/restaurant-site/internal/interfaces/http/routes"
	"github.com/your-org/restaurant-site/internal/pkg/email"
	"github.com/your-org/restaurant-site/internal/pkg/logger"
	"github.com/your-org/restaurant-site/internal/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg.Logging)
	log.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("Starting")

	backend, err := storage.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to open cart storage")
	}
	defer backend.Close()

	formatter, err := cart.NewCurrencyFormatter(cfg.Cart.Locale, cfg.Cart.Currency)
	if err != nil {
		log.WithError(err).Fatal("Invalid cart currency settings")
	}
	renderer := cart.NewRenderer(formatter)
	m := metrics.New()

	cartStore := cart.NewStore(backend.Store,
		cart.WithKey(cfg.Cart.StorageKey),
		cart.WithDefaultItemName(cfg.Cart.DefaultItemName),
		cart.WithRenderer(renderer),
		cart.WithRecorder(m),
		cart.WithViews(m),
		cart.WithLogger(log),
	)

	// Initial render; a bad slot is already logged by the store.
	initial := cartStore.Reload(context.Background())
	log.WithField("items", len(initial)).Info("Cart loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := cartStore.Watch(ctx)
		switch {
		case errors.Is(err, cart.ErrWatchUnsupported):
			log.WithField("storage", backend.Name).Info("Storage does not report external writes, cart reloads on read")
		case err != nil && !errors.Is(err, context.Canceled):
			log.WithError(err).Warn("Cart watch stopped")
		}
	}()

	quantity := cart.NewQuantitySanitizer(cfg.Cart.MaxQuantity)
	quantity.Default = cfg.Cart.DefaultQuantity

	mailer := email.NewEmailService(cfg, log)
	cartHandler := handlers.NewCartHandler(
		cartStore,
		renderer,
		quantity,
		cfg.Cart.DefaultItemName,
		log,
	)

	server := http.NewServer(cfg, log, http.Dependencies{
		Storage:     backend.Store,
		StorageName: backend.Name,
		RedisClient: backend.Redis,
		Metrics:     m,
		Handlers: routes.Handlers{
			Cart:    cartHandler,
			Menu:    handlers.NewMenuHandler(menu.DefaultCatalog(), cartHandler),
			Gallery: handlers.NewGalleryHandler(gallery.NewDefaultService()),
			Contact: handlers.NewContactHandler(contact.NewService(mailer, log)),
		},
	})

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.Info("Server shutdown completed")
}
