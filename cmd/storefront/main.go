package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/techieonvacation/ex-earning/internal/cache"
	"github.com/techieonvacation/ex-earning/internal/cart"
	"github.com/techieonvacation/ex-earning/internal/config"
	"github.com/techieonvacation/ex-earning/internal/events"
	h "github.com/techieonvacation/ex-earning/internal/http"
	"github.com/techieonvacation/ex-earning/internal/logger"
	"github.com/techieonvacation/ex-earning/internal/pricing"
	"github.com/techieonvacation/ex-earning/internal/repository"
	"github.com/techieonvacation/ex-earning/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("failed to build logger", zap.Error(err))
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	// no exporter: incoming trace context only feeds log correlation
	otel.SetTextMapPropagator(propagation.TraceContext{})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open repository", zap.Error(err))
	}

	sectionCache := openCache(ctx, cfg, log)

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.CatalogTopic, cfg.KafkaBrokers...)
		log.Info("publishing catalog events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.CatalogTopic))
	}

	catalog := service.NewCatalogService(repo, sectionCache, publisher, log)
	if cfg.SeedDefaults {
		if _, err := catalog.EnsureDefaults(ctx); err != nil {
			log.Fatal("failed to seed catalog", zap.Error(err))
		}
	}

	sessions := cart.NewSessions(cart.NewReducer(pricing.NewCalculator(cfg.TaxRate)), cfg.CartIdleTTL, log)
	go sessions.Run(ctx, time.Minute)

	router := h.NewRouter(catalog, sessions, log, h.RouterConfig{
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront starting", zap.String("addr", srv.Addr), zap.String("backend", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		log.Warn("failed to close event publisher", zap.Error(err))
	}
	if err := repo.Close(shutdownCtx); err != nil {
		log.Warn("failed to close repository", zap.Error(err))
	}

	log.Info("server exited")
}

func openRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Repository, error) {
	if cfg.StoreBackend == config.BackendFile {
		log.Info("using file catalog", zap.String("path", cfg.DataFile))
		return repository.NewFileRepository(cfg.DataFile), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	db, err := repository.ConnectMongoDB(connectCtx, repository.MongoConfig{
		URI:         cfg.MongoURI,
		Database:    cfg.MongoDBName,
		AppName:     "storefront",
		MaxPoolSize: 50,
		MinPoolSize: 5,
	})
	if err != nil {
		return nil, err
	}
	repo := repository.NewMongoRepository(db)
	if err := repo.CreateIndexes(connectCtx); err != nil {
		return nil, err
	}
	log.Info("connected to MongoDB", zap.String("database", cfg.MongoDBName))
	return repo, nil
}

// openCache returns the Redis cache, or a no-op cache when Redis is not
// configured or unreachable at start-up.
func openCache(ctx context.Context, cfg *config.Config, log *zap.Logger) cache.SectionCache {
	if cfg.RedisAddr == "" {
		return cache.Nop{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis ping failed, serving without cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		client.Close()
		return cache.Nop{}
	}
	log.Info("redis ping succeeded", zap.String("addr", cfg.RedisAddr))
	return cache.NewRedisCache(client, cfg.SectionsCacheTTL)
}
