package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-connect-layer/internal/application"
	"catalog-connect-layer/internal/application/webhook_handlers"
	"catalog-connect-layer/internal/config"
	"catalog-connect-layer/internal/domain"
	apiinfra "catalog-connect-layer/internal/infrastructure/api"
	"catalog-connect-layer/internal/infrastructure/dedup"
	"catalog-connect-layer/internal/infrastructure/metrics"
	"catalog-connect-layer/internal/infrastructure/repository"
	shopifyinfra "catalog-connect-layer/internal/infrastructure/shopify"
	woocommerceinfra "catalog-connect-layer/internal/infrastructure/woocommerce"
	"catalog-connect-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Webhook event audit log: Mongo when configured, discarded otherwise.
	var events ports.WebhookEventRepository = repository.NopWebhookEventRepository{}
	if cfg.MongoURI != "" {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer client.Disconnect(context.Background())
		events = repository.NewMongoWebhookEventRepository(client.Database(cfg.MongoDatabase))
		logger.Info().Str("database", cfg.MongoDatabase).Msg("Webhook event log backed by MongoDB")
	}

	// Event tracker: Redis when configured, in-memory otherwise. The memory
	// tracker loses dedup history on restart.
	var tracker ports.EventTracker = dedup.NewMemoryTracker(cfg.DedupWindow)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("Invalid REDIS_URL")
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		tracker = dedup.NewRedisTracker(redisClient, cfg.DedupWindow)
		logger.Info().Msg("Event dedup backed by Redis")
	}

	credentials := config.NewCredentialStore(cfg)

	// Outbound clients.
	rateLimiter := shopifyinfra.NewRateLimiter(logger)
	shopifyClient := shopifyinfra.NewClient(cfg.UpstreamTimeout, rateLimiter, logger)
	wooClient := woocommerceinfra.NewClient(cfg.UpstreamTimeout, logger)

	// Engine factory: one builder per supported integration, checked for
	// completeness before the server accepts traffic.
	factory := application.NewEngineFactory(credentials, logger)
	factory.Register(domain.IntegrationShopify, func(clientID string, creds domain.ClientCredentials) (ports.CatalogEngine, error) {
		return shopifyinfra.NewEngine(clientID, creds, shopifyClient, logger)
	})
	factory.Register(domain.IntegrationWooCommerce, func(clientID string, creds domain.ClientCredentials) (ports.CatalogEngine, error) {
		return woocommerceinfra.NewEngine(clientID, creds, wooClient, logger)
	})
	if err := factory.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Engine factory is incomplete")
	}

	// Webhook dispatch.
	dispatcher := application.NewWebhookDispatcher(logger)
	dispatcher.RegisterHandler(webhook_handlers.NewProductHandler(logger))

	webhookRouter := apiinfra.NewWebhookRouter(
		[]apiinfra.PlatformWebhook{
			{
				Integration:     domain.IntegrationShopify,
				SignatureHeader: shopifyinfra.WebhookSignatureHeader,
				EventIDHeader:   shopifyinfra.WebhookEventIDHeader,
				SourceHeader:    shopifyinfra.WebhookShopDomainHeader,
				Verifier:        shopifyinfra.NewWebhookVerifier(cfg.Shopify.WebhookSecret),
			},
			{
				Integration:     domain.IntegrationWooCommerce,
				SignatureHeader: woocommerceinfra.WebhookSignatureHeader,
				EventIDHeader:   woocommerceinfra.WebhookEventIDHeader,
				SourceHeader:    woocommerceinfra.WebhookSourceHeader,
				Verifier:        woocommerceinfra.NewWebhookVerifier(cfg.WooCommerce.WebhookSecret),
			},
		},
		tracker,
		dispatcher,
		events,
		logger,
	)

	// Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	webhookRouter.Mount(r)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info().Msg("Shutting down API server")
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("Server exited with error")
	}
}
