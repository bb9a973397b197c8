// Package app provides application initialization and wiring.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jobrunner/meridian/internal/adapters/geojson"
	httpAdapter "github.com/jobrunner/meridian/internal/adapters/http"
	"github.com/jobrunner/meridian/internal/adapters/metrics"
	"github.com/jobrunner/meridian/internal/adapters/storage"
	tlsAdapter "github.com/jobrunner/meridian/internal/adapters/tls"
	"github.com/jobrunner/meridian/internal/adapters/watcher"
	"github.com/jobrunner/meridian/internal/application"
	"github.com/jobrunner/meridian/internal/config"
	"github.com/jobrunner/meridian/internal/ports/output"
)

// App holds all application components.
type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Storage       output.ObjectStorage
	Repository    *geojson.Repository
	Registry      *application.CollectionRegistry
	QueryService  *application.QueryService
	RasterService *application.RasterService
	HealthService *application.HealthService
	SyncService   *application.SyncService
	HTTPServer    *httpAdapter.Server
	TLSServer     *tlsAdapter.Server
	Watcher       *watcher.Watcher
	Metrics       *metrics.Collector
}

// New creates and initializes a new application.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize metrics
	var metricsCollector output.MetricsCollector = &output.NoOpMetrics{}
	if cfg.Metrics.Enabled {
		app.Metrics = metrics.NewCollector(cfg.Metrics.Namespace)
		metricsCollector = app.Metrics
	}

	// Initialize storage adapter
	store, err := initStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	app.Storage = store

	// Initialize GeoJSON repository
	app.Repository = geojson.NewRepository()

	// Initialize collection registry
	app.Registry = application.NewCollectionRegistry(
		app.Repository,
		app.Storage,
		metricsCollector,
		logger,
		cfg.Storage.LocalPath,
	)

	// Initialize query service
	app.QueryService = application.NewQueryService(
		app.Registry,
		app.Repository,
		metricsCollector,
		logger,
		application.QueryServiceConfig{
			MaxFeatures:     cfg.Query.MaxFeatures,
			DefaultRadiusKm: cfg.Query.DefaultRadiusKm,
		},
	)

	// Initialize raster service
	app.RasterService = application.NewRasterService(
		app.Registry,
		app.Repository,
		metricsCollector,
		logger,
		application.RasterServiceConfig{
			MaxWidth:  cfg.Raster.MaxWidth,
			MaxHeight: cfg.Raster.MaxHeight,
		},
	)

	// Initialize health service
	app.HealthService = application.NewHealthService(app.Registry)

	// Initialize sync service if enabled
	if cfg.Sync.Enabled {
		app.SyncService = application.NewSyncService(app.Registry, cfg.Sync.Interval, logger)
	}

	// Initialize HTTP server
	app.HTTPServer = httpAdapter.NewServer(
		cfg.Server,
		app.QueryService,
		app.Registry,
		app.RasterService,
		app.HealthService,
		app.SyncService,
		metricsCollector,
		logger,
		cfg.Query.WithGeometry,
	)

	// Expose Prometheus metrics on the main router
	if cfg.Metrics.Enabled {
		app.HTTPServer.Router().Use(app.Metrics.Middleware)
		app.HTTPServer.Router().Handle(cfg.Metrics.Path, metrics.Handler())
	}

	// Initialize TLS server if enabled
	if cfg.TLS.Enabled {
		tlsServer, err := tlsAdapter.NewServer(
			tlsAdapter.Config{
				Enabled:  cfg.TLS.Enabled,
				Domains:  cfg.TLS.Domains,
				Email:    cfg.TLS.Email,
				CacheDir: cfg.TLS.CacheDir,
				Staging:  cfg.TLS.Staging,
				DNS: tlsAdapter.DNSConfig{
					SubscriptionID:    cfg.TLS.DNS.SubscriptionID,
					ResourceGroupName: cfg.TLS.DNS.ResourceGroupName,
					ClientID:          cfg.TLS.DNS.ClientID,
				},
			},
			app.HTTPServer.Router(),
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("initializing TLS: %w", err)
		}
		app.TLSServer = tlsServer
	}

	// Initialize file watcher for hot-reload
	if cfg.Storage.Type == "local" {
		w, err := watcher.New(
			watcher.Config{
				Paths: []string{cfg.Storage.LocalPath},
			},
			app.handleFileEvent,
			logger,
		)
		if err != nil {
			logger.Warn("failed to initialize file watcher", "error", err)
		} else {
			app.Watcher = w
		}
	}

	return app, nil
}

// Start starts all application components.
func (a *App) Start(ctx context.Context) error {
	// Load all collections from storage
	if err := a.Registry.LoadAll(ctx); err != nil {
		a.Logger.Warn("failed to load collections", "error", err)
	}

	// Start file watcher
	if a.Watcher != nil {
		if err := a.Watcher.Start(ctx); err != nil {
			a.Logger.Warn("failed to start file watcher", "error", err)
		}
	}

	// Start periodic sync
	if a.SyncService != nil {
		a.SyncService.Start(ctx)
	}

	// Start server
	if a.Config.TLS.Enabled && a.TLSServer != nil {
		return a.TLSServer.ListenAndServe(a.Config.Server.Address())
	}
	return a.HTTPServer.Start()
}

// Shutdown gracefully shuts down all components.
func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info("shutting down application")

	// Stop watcher
	if a.Watcher != nil {
		_ = a.Watcher.Stop()
	}

	// Stop sync service
	if a.SyncService != nil {
		a.SyncService.Stop()
	}

	// Shutdown HTTP server
	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		a.Logger.Error("HTTP server shutdown error", "error", err)
	}

	// Unload all collections
	collections, _ := a.Registry.ListCollections(ctx)
	for _, col := range collections {
		if err := a.Registry.UnloadCollection(ctx, col.ID); err != nil {
			a.Logger.Error("failed to unload collection", "id", col.ID, "error", err)
		}
	}

	return nil
}

// handleFileEvent handles file system events for hot-reload.
func (a *App) handleFileEvent(ctx context.Context, event watcher.Event) error {
	a.Logger.Info("file event", "path", event.Path, "operation", event.Operation.String())

	switch event.Operation {
	case watcher.OpCreate, watcher.OpModify:
		// Reload the collection
		return a.Registry.LoadCollection(ctx, event.Path)

	case watcher.OpDelete:
		// Unload the collection by deriving its ID from the file path
		collectionID := geojson.DeriveCollectionID(event.Path)
		if err := a.Registry.UnloadCollection(ctx, collectionID); err != nil {
			a.Logger.Warn("failed to unload deleted collection", "id", collectionID, "error", err)
		}
		return nil
	}

	return nil
}

// initStorage initializes the appropriate storage adapter.
func initStorage(ctx context.Context, cfg config.StorageConfig) (output.ObjectStorage, error) {
	switch cfg.Type {
	case "local":
		return storage.NewLocalStorage(cfg.LocalPath), nil

	case "s3":
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Prefix:          cfg.S3.Prefix,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})

	case "azure":
		return storage.NewAzureStorage(storage.AzureConfig{
			Container:        cfg.Azure.Container,
			AccountName:      cfg.Azure.AccountName,
			AccountKey:       cfg.Azure.AccountKey,
			ConnectionString: cfg.Azure.ConnectionString,
			Prefix:           cfg.Azure.Prefix,
		})

	case "http":
		return storage.NewHTTPStorage(storage.HTTPConfig{
			BaseURL:   cfg.HTTP.BaseURL,
			IndexFile: cfg.HTTP.IndexFile,
			Timeout:   cfg.HTTP.Timeout,
			Username:  cfg.HTTP.Username,
			Password:  cfg.HTTP.Password,
		}), nil

	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
