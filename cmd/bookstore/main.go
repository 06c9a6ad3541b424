package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"BookStore/internal/auth"
	"BookStore/internal/catalog"
	"BookStore/internal/config"
	"BookStore/internal/gateway"
	"BookStore/pkg/kit"
)

func main() {
	service := "bookstore"

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := kit.NewLogger(service, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store, err := newCatalogStore(cfg)
	if err != nil {
		log.Fatal("load catalog failed", zap.Error(err), zap.String("seed_path", cfg.CatalogSeedPath))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h, err := gateway.NewHandler(gateway.Deps{
		Catalog:   store,
		Directory: auth.NewMemStore(),
	}, gateway.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
	})
	if err != nil {
		log.Fatal("init handler failed", zap.Error(err))
	}

	opts := kit.ServerOptions{
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.ShutdownTimeout,
	}
	if err := kit.RunHTTPServer(cfg.Addr(), h, log, opts); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func newCatalogStore(cfg config.Config) (*catalog.MemStore, error) {
	if cfg.CatalogSeedPath == "" {
		return catalog.NewDefaultStore(), nil
	}

	books, err := catalog.LoadSeedFile(cfg.CatalogSeedPath)
	if err != nil {
		return nil, err
	}
	return catalog.NewMemStore(books)
}
