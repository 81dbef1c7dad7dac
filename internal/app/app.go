// Package app wires the widget components together.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/skyline/internal/config"
	"github.com/bobby-s-dev/skyline/internal/metrics"
	"github.com/bobby-s-dev/skyline/internal/scheduler"
	"github.com/bobby-s-dev/skyline/internal/services"
	"github.com/bobby-s-dev/skyline/internal/storage"
	"github.com/bobby-s-dev/skyline/internal/view"
	"github.com/bobby-s-dev/skyline/pkg/client"
)

const metricsNamespace = "skyline"

// App is the single widget instance: one panel, one theme flag.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Registry   *prometheus.Registry
	Metrics    *metrics.Collector
	Panel      *view.Panel
	Controller *services.Controller
	Theme      *services.ThemeManager
	Scheduler  *scheduler.Scheduler
	Store      storage.Store

	bootstrap sync.WaitGroup
	cancel    context.CancelFunc
}

type options struct {
	httpClient client.HTTPClient
	store      storage.Store
	now        func() time.Time
}

type Option func(*options)

// WithHTTPClient replaces the upstream HTTP client for both endpoints.
func WithHTTPClient(c client.HTTPClient) Option {
	return func(o *options) { o.httpClient = c }
}

// WithStore replaces the configured preference store.
func WithStore(s storage.Store) Option {
	return func(o *options) { o.store = s }
}

// WithClock sets the viewer clock used for forecast day labels.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(metricsNamespace, registry)

	store := o.store
	if store == nil {
		var err error
		store, err = openStore(cfg.Storage.PreferencesDB, logger)
		if err != nil {
			return nil, err
		}
	}

	clientConfig := client.ClientConfig{
		Timeout:        cfg.Upstream.HTTPTimeout,
		Threshold:      cfg.CircuitBreaker.Threshold,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
		UserAgent:      cfg.Upstream.UserAgent,
	}
	clientOpts := []client.Option{client.WithObserver(collector.ObserveUpstream)}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(o.httpClient))
	}

	geocoder := client.NewGeocodingClient(cfg.Upstream.GeocodeURL, clientConfig, logger, clientOpts...)
	forecaster := client.NewOpenMeteoClient(cfg.Upstream.ForecastURL, clientConfig, logger, clientOpts...)

	panel := view.NewPanel()
	controller, err := services.NewController(services.ControllerDeps{
		Resolver:    geocoder,
		Fetcher:     forecaster,
		Renderer:    view.NewRenderer(o.now),
		Display:     panel,
		Metrics:     collector,
		Logger:      logger,
		DefaultCity: cfg.Widget.DefaultCity,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize controller: %w", err)
	}

	refresh, err := scheduler.NewScheduler(controller, cfg.Scheduler.RefreshSchedule, cfg.Widget.BootstrapTimeout, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &App{
		Config:     cfg,
		Logger:     logger,
		Registry:   registry,
		Metrics:    collector,
		Panel:      panel,
		Controller: controller,
		Theme:      services.NewThemeManager(store, panel, collector, logger),
		Scheduler:  refresh,
		Store:      store,
	}, nil
}

func openStore(path string, logger *zap.Logger) (storage.Store, error) {
	if path == "" {
		logger.Info("No preferences database configured, theme is kept in memory")
		return storage.NewMemoryStore(), nil
	}
	s, err := storage.NewSQLite(path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}
	return s, nil
}

// Start applies the startup theme, begins loading the default city in the
// background and starts the refresh scheduler.
func (a *App) Start(ctx context.Context) {
	theme, err := a.Theme.Init(ctx, a.Config.PrefersLight())
	if err != nil {
		a.Logger.Warn("Failed to persist startup theme", zap.Error(err))
	}
	a.Logger.Info("Theme initialized", zap.String("theme", string(theme)))

	bootCtx, cancel := context.WithTimeout(context.Background(), a.Config.Widget.BootstrapTimeout)
	a.cancel = cancel
	a.bootstrap.Add(1)
	go func() {
		defer a.bootstrap.Done()
		defer cancel()
		a.Controller.Bootstrap(bootCtx)
	}()

	a.Scheduler.Start()
}

// WaitBootstrap blocks until the startup load finished.
func (a *App) WaitBootstrap() {
	a.bootstrap.Wait()
}

func (a *App) Close(ctx context.Context) error {
	a.Scheduler.Stop(ctx)
	if a.cancel != nil {
		a.cancel()
	}
	a.bootstrap.Wait()
	return a.Store.Close()
}
