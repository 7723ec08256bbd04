package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/SearchGo/internal/cache"
	"github.com/utafrali/SearchGo/internal/catalog"
	"github.com/utafrali/SearchGo/internal/config"
	"github.com/utafrali/SearchGo/internal/event"
	handler "github.com/utafrali/SearchGo/internal/handler/http"
	"github.com/utafrali/SearchGo/internal/index"
	esindex "github.com/utafrali/SearchGo/internal/index/elasticsearch"
	memindex "github.com/utafrali/SearchGo/internal/index/memory"
	"github.com/utafrali/SearchGo/internal/service"
	"github.com/utafrali/SearchGo/pkg/health"
	pkgkafka "github.com/utafrali/SearchGo/pkg/kafka"
	"github.com/utafrali/SearchGo/pkg/middleware"
)

// App wires together all dependencies and runs the search service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	svc        *service.Service
	consumer   *pkgkafka.Consumer
	httpServer *http.Server
	redis      *redis.Client
}

// NewApp creates a new application instance, initializing all dependencies.
// The catalog is loaded and the index built before the server accepts
// traffic, so a snapshot always exists once the app is running; an index
// build failure is tolerated because search degrades to the in-memory path.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Catalog source: the HTTP feed wins when both are configured.
	var source catalog.Source
	if cfg.CatalogFeedURL != "" {
		source = catalog.NewFeedSource(cfg.CatalogFeedURL, nil)
		logger.Info("catalog feed source initialized", slog.String("url", cfg.CatalogFeedURL))
	} else {
		source = catalog.NewFileSource(cfg.CatalogPath, logger)
		logger.Info("catalog file source initialized", slog.String("path", cfg.CatalogPath))
	}
	store := catalog.NewStore(source, logger)

	// Primary index engine.
	var primary index.TextIndex
	var esIdx *esindex.Index
	switch cfg.SearchEngine {
	case "elasticsearch":
		var err error
		esIdx, err = esindex.New(cfg.ElasticsearchURL, cfg.ElasticsearchIndex, cfg.IndexTimeout, logger)
		if err != nil {
			return nil, fmt.Errorf("init elasticsearch index: %w", err)
		}
		primary = esIdx
		logger.Info("elasticsearch index initialized",
			slog.String("url", cfg.ElasticsearchURL),
			slog.String("index", cfg.ElasticsearchIndex),
		)
	default:
		primary = memindex.New()
		logger.Info("in-memory index initialized")
	}

	failover := index.NewFailover(primary, index.NewFallbackScan(store), logger)

	// Optional Redis suggestion cache.
	var redisClient *redis.Client
	var suggestCache *cache.SuggestCache
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		suggestCache = cache.NewSuggestCache(redisClient, cfg.SuggestCacheTTL, logger)
		logger.Info("suggestion cache initialized", slog.String("addr", cfg.RedisAddr))
	}

	svc := service.New(store, failover, suggestCache, service.Options{
		DefaultLimit:         cfg.DefaultLimit,
		MaxLimit:             cfg.MaxLimit,
		SuggestMinPrefix:     cfg.SuggestMinPrefix,
		SuggestMax:           cfg.SuggestMax,
		SuggestMaxCategories: cfg.SuggestMaxCategories,
		SampleSize:           cfg.SampleSize,
		PopularMinProducts:   cfg.PopularMinProducts,
	}, logger)

	// Initial load. Without a snapshot nothing can be served, so a failure
	// here is fatal.
	snap, err := svc.RefreshCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("initial catalog load: %w", err)
	}
	logger.Info("catalog loaded", slog.Int("products", snap.Len()))

	if _, err := svc.Reindex(ctx); err != nil {
		logger.Error("initial index build failed, search will degrade until the next rebuild",
			slog.String("error", err.Error()),
		)
	}

	// Optional catalog event consumer.
	var consumer *pkgkafka.Consumer
	if len(cfg.KafkaBrokers) > 0 {
		catalogConsumer := event.NewCatalogConsumer(svc, logger)
		consumer = pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
			Brokers:  cfg.KafkaBrokers,
			GroupID:  cfg.KafkaGroupID,
			Topic:    event.TopicCatalogUpdated,
			MinBytes: 1,
			MaxBytes: 10e6, // 10 MB
		}, catalogConsumer.HandleCatalogUpdated, logger)
		logger.Info("kafka consumer initialized",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.String("topic", event.TopicCatalogUpdated),
		)
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("catalog", func(context.Context) error {
		if store.Current() == nil {
			return errors.New("catalog not loaded")
		}
		return nil
	})
	if esIdx != nil {
		healthHandler.Register("elasticsearch", esIdx.Ping)
	}
	if suggestCache != nil {
		healthHandler.Register("redis", suggestCache.Ping)
	}
	if len(cfg.KafkaBrokers) > 0 {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
		})
	}
	healthHandler.SetInfo(func(context.Context) map[string]any {
		s := store.Current()
		if s == nil {
			return nil
		}
		return map[string]any{
			"catalog_generation": s.Generation(),
			"catalog_products":   s.Len(),
			"categories":         len(s.Categories()),
		}
	})

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.AllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(svc, healthHandler, corsCfg, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		svc:        svc,
		consumer:   consumer,
		httpServer: httpServer,
		redis:      redisClient,
	}, nil
}

// Run starts the HTTP server and the Kafka consumer, blocking until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	if a.consumer != nil {
		go func() {
			if err := a.consumer.Start(ctx); err != nil {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.consumer != nil {
		if err := a.consumer.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
