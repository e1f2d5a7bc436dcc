package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VanshikaGY/ShopEasy/internal/analytics"
	"github.com/VanshikaGY/ShopEasy/internal/app"
	"github.com/VanshikaGY/ShopEasy/internal/cart"
	"github.com/VanshikaGY/ShopEasy/internal/catalog"
	"github.com/VanshikaGY/ShopEasy/internal/config"
	"github.com/VanshikaGY/ShopEasy/internal/gateway"
	h "github.com/VanshikaGY/ShopEasy/internal/http"
	"github.com/VanshikaGY/ShopEasy/internal/repository"
	"github.com/VanshikaGY/ShopEasy/internal/storage"
	"github.com/VanshikaGY/ShopEasy/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	// SQLite backs the kv store, the product table, or both
	var db *sql.DB
	if cfg.Storage.Backend == config.StorageSQLite || cfg.CatalogSource == config.CatalogSQLite {
		db, err = repository.Open(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open sqlite")
		}
		defer db.Close()

		if err := repository.RunMigrations(db); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		log.Info().Str("path", cfg.Storage.SQLitePath).Msg("sqlite ready")
	}

	kv, closeKV := openStorage(ctx, cfg.Storage, db, log)
	defer closeKV()

	gw := gateway.New(cfg.GatewayBaseURL, kv,
		gateway.WithTimeout(cfg.RequestTimeout),
		gateway.WithLogger(log),
	)

	var source catalog.Source
	switch cfg.CatalogSource {
	case config.CatalogSQLite:
		repo := repository.NewProductRepository(db)
		seed, err := catalog.Seed()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to parse catalog seed")
		}
		seeded, err := repo.SeedProducts(ctx, seed)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed products")
		}
		log.Info().Bool("seeded", seeded).Msg("product table ready")
		source = repo
	case config.CatalogRemote:
		source = gw
	default:
		source = catalog.EmbeddedSource{}
	}

	loadCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	products, err := catalog.Load(loadCtx, source)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("failed to load catalog")
	}
	log.Info().Int("products", products.Len()).Str("source", cfg.CatalogSource).Msg("catalog loaded")

	var sink analytics.Tracker
	switch cfg.Analytics.Sink {
	case config.AnalyticsKafka:
		kt := analytics.NewKafkaTracker(cfg.Analytics.KafkaTopic, cfg.Analytics.KafkaBrokers...)
		defer kt.Close()
		sink = kt
	case config.AnalyticsNone:
		sink = analytics.Nop{}
	default:
		sink = analytics.NewGatewayTracker(gw)
	}
	tracker := analytics.BestEffort(sink, log).WithTimeout(cfg.RequestTimeout)

	storefront := app.New(app.Deps{
		Catalog: products,
		Cart:    cart.NewStore(products, kv, cart.WithLogger(log)),
		Gateway: gw,
		Tracker: tracker,
		Logger:  log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      h.NewRouter(storefront, cfg.RequestTimeout, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("storefront starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	shutdownCtx, cancelShutdown := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	tracker.Wait()
	log.Info().Msg("storefront stopped")
}

// openStorage returns the configured durable store and its cleanup.
func openStorage(ctx context.Context, cfg config.StorageConfig, db *sql.DB, log zerolog.Logger) (storage.Store, func()) {
	switch cfg.Backend {
	case config.StorageMemory:
		log.Warn().Msg("using in-memory storage, the cart is lost on restart")
		return storage.NewMemoryStore(), func() {}

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis connection failed")
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis ping succeeded")
		return storage.NewRedisStore(client, cfg.RedisTTL), func() { _ = client.Close() }

	case config.StorageMongo:
		mongoDB, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		log.Info().Str("db", cfg.MongoDBName).Msg("connected to MongoDB")
		return storage.NewMongoStore(mongoDB), func() { _ = mongoDB.Client().Disconnect(context.Background()) }

	default:
		return storage.NewSQLiteStore(db), func() {}
	}
}
