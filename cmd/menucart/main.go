package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"MenuCart/config"
	"MenuCart/internal/cartview"
	"MenuCart/internal/menu"
	"MenuCart/internal/storage"
	"MenuCart/internal/web"
	"MenuCart/pkg/kit"
)

func main() {
	service := "menucart"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg := config.Load()

	kv, err := openStorage(cfg.Storage)
	if err != nil {
		log.Fatal("open storage", zap.Error(err))
	}

	menuStore, err := openMenu(cfg.MenuFile)
	if err != nil {
		log.Fatal("open menu", zap.Error(err))
	}

	renderer := cartview.New()

	s := &web.Server{
		Menu:     menuStore,
		Sessions: web.NewSessionManager(kv, renderer, log),
		Renderer: renderer,
		Log:      log,
	}
	if cfg.RateLimit.Limit > 0 {
		window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		s.Limiter = kit.NewIPRateLimiter(cfg.RateLimit.Limit, window)
	}

	h := web.NewHandler(s, web.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	if err := kit.RunHTTPServer(cfg.HTTPServerAddr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStorage(cfg config.Storage) (storage.KV, error) {
	switch cfg.Driver {
	case "memory":
		return storage.NewMem(), nil
	case "file":
		return storage.NewFile(cfg.Path), nil
	case "sqlite":
		return storage.OpenSQL("sqlite3", cfg.Path)
	case "postgres":
		return storage.OpenSQL("pgx", cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func openMenu(path string) (menu.Store, error) {
	if path == "" {
		return menu.NewMemStore(), nil
	}
	return menu.NewMemStoreFromFile(path)
}
