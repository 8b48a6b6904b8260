package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/semontology/catalog"
	"github.com/c360studio/semontology/config"
	"github.com/c360studio/semontology/loader"
	"github.com/c360studio/semontology/manager"
	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/source"
	"github.com/c360studio/semontology/storage"
	"github.com/c360studio/semontology/transform"
	"github.com/c360studio/semontology/translate"
)

// App wires the catalog, readers, storage and manager together.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	// NATS
	natsConn *nats.Conn
	js       jetstream.JetStream
	buckets  *storage.Buckets

	catalog *catalog.Catalog
	opener  *source.Opener
	axioms  *translate.Registry
	manager *manager.Manager

	// Metrics
	registry      *prometheus.Registry
	metrics       *loader.Metrics
	metricsServer *http.Server
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cat, err := openCatalog(cfg, logger)
	if err != nil {
		return nil, err
	}
	factory, err := ontology.NewDataFactory(ontology.DefaultFactorySize)
	if err != nil {
		return nil, fmt.Errorf("create data factory: %w", err)
	}
	return &App{
		cfg:      cfg,
		logger:   logger,
		catalog:  cat,
		axioms:   translate.NewRegistry(translate.WithLogger(logger), translate.WithFactory(factory)),
		registry: prometheus.NewRegistry(),
	}, nil
}

func openCatalog(cfg *config.Config, logger *slog.Logger) (*catalog.Catalog, error) {
	dirs := make([]catalog.Directory, 0, len(cfg.Catalog.Directories))
	for _, d := range cfg.CatalogDirectories() {
		dirs = append(dirs, catalog.Directory{Path: d})
	}
	opts := []catalog.Option{
		catalog.WithDirectories(dirs...),
		catalog.WithIgnore(cfg.Catalog.Ignore...),
		catalog.WithLogger(logger),
	}
	if path := cfg.CatalogPath(); path != "" {
		c, err := catalog.Load(path, opts...)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		return c, nil
	}
	return catalog.New(append(opts, catalog.WithBaseDir(cfg.Root))...)
}

// Start connects to NATS when configured, scans the catalog and serves
// metrics.
func (a *App) Start(ctx context.Context) error {
	if a.cfg.NATS.URL != "" {
		if err := a.connectNATS(); err != nil {
			return err
		}
	}

	if err := a.catalog.Scan(ctx); err != nil {
		return fmt.Errorf("scan catalog: %w", err)
	}
	a.logger.Debug("Catalog ready", "entries", len(a.catalog.Entries()))

	metrics, err := loader.NewMetrics(a.registry, "ontoload")
	if err != nil {
		return fmt.Errorf("create metrics: %w", err)
	}
	a.metrics = metrics

	openerOpts := []source.OpenerOption{
		source.WithBaseDir(a.cfg.Root),
		source.WithHTTPClient(&http.Client{Timeout: a.cfg.HTTP.Timeout}),
		source.WithPrivateNetworks(a.cfg.HTTP.AllowPrivateNetworks),
		source.WithLogger(a.logger),
	}
	if a.buckets != nil {
		openerOpts = append(openerOpts, source.WithBuckets(a.buckets))
	}
	a.opener = source.NewOpener(openerOpts...)

	if err := a.Reset(); err != nil {
		return err
	}

	if a.cfg.Metrics.Addr != "" {
		a.serveMetrics()
	}
	return nil
}

func (a *App) connectNATS() error {
	a.logger.Info("Connecting to NATS", "url", a.cfg.NATS.URL)
	conn, err := nats.Connect(a.cfg.NATS.URL, nats.Name("ontoload"))
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return fmt.Errorf("create JetStream context: %w", err)
	}
	a.natsConn = conn
	a.js = js
	a.buckets = storage.NewBuckets(js)
	return nil
}

func (a *App) serveMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	a.metricsServer = &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Warn("Metrics server stopped", "error", err)
		}
	}()
	a.logger.Info("Serving metrics", "addr", a.cfg.Metrics.Addr)
}

// Reset replaces the manager with an empty one, dropping every loaded
// ontology.
func (a *App) Reset() error {
	lc, err := a.cfg.Loader.LoadConfig(a.catalog.Ignored)
	if err != nil {
		return fmt.Errorf("loader config: %w", err)
	}
	pipeline := transform.Default().WithLogger(a.logger)
	a.manager = manager.New(
		manager.WithConfig(lc),
		manager.WithTranslators(a.axioms),
		manager.WithLogger(a.logger),
		manager.WithLoaderOptions(
			loader.WithPrimaryReader(source.NewNTriplesReader(a.opener)),
			loader.WithSecondaryReader(source.NewAxiomReader(a.opener,
				source.WithImportMapper(a.catalog),
				source.WithAxiomRegistry(a.axioms))),
			loader.WithIRIMapper(a.catalog),
			loader.WithDocumentSourceMapper(a.catalog),
			loader.WithPipeline(pipeline),
			loader.WithMetrics(a.metrics),
		),
	)
	return nil
}

// Load resolves locator with its import closure.
func (a *App) Load(ctx context.Context, locator string) (*manager.Ontology, error) {
	if a.cfg.Loader.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Loader.Timeout)
		defer cancel()
	}
	return a.manager.Load(ctx, loader.DocumentSource{Locator: locator})
}

// Manager returns the current ontology manager.
func (a *App) Manager() *manager.Manager { return a.manager }

// Catalog returns the IRI catalog.
func (a *App) Catalog() *catalog.Catalog { return a.catalog }

// Store returns the configured document bucket.
func (a *App) Store(ctx context.Context) (*storage.DocumentStore, error) {
	if a.buckets == nil {
		return nil, errors.New("nats is not configured (set nats.url or --nats-url)")
	}
	return a.buckets.Store(ctx, a.cfg.NATS.Bucket)
}

// Shutdown releases connections and stops the metrics server.
func (a *App) Shutdown(timeout time.Duration) {
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.logger.Warn("Metrics server shutdown failed", "error", err)
		}
		cancel()
	}
	if a.natsConn != nil {
		if err := a.natsConn.Drain(); err != nil {
			a.natsConn.Close()
		}
	}
}
