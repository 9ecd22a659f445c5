package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nexio-app/nexio-api/internal/config"
	"github.com/nexio-app/nexio-api/internal/database"
	"github.com/nexio-app/nexio-api/internal/handler"
	"github.com/nexio-app/nexio-api/internal/middleware"
	"github.com/nexio-app/nexio-api/internal/remote"
	"github.com/nexio-app/nexio-api/internal/router"
	"github.com/nexio-app/nexio-api/internal/store"
	"github.com/nexio-app/nexio-api/internal/studio"
	"github.com/nexio-app/nexio-api/pkg/ai"
	cloud "github.com/nexio-app/nexio-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	remoteClient := buildRemoteClient(cfg, logger)

	var events *nats.Conn
	if cfg.NATSURL != "" {
		events, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, domain events disabled")
			events = nil
		} else {
			defer events.Close()
		}
	}

	appStore := store.New(remoteClient, events, cfg.EventSubject, logger)
	appStore.Init(context.Background())

	generator := buildGenerator(cfg, logger)
	uploader := buildUploader(cfg, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	stateHandler := handler.NewStateHandler(appStore, logger)
	authHandler := handler.NewAuthHandler(appStore, validate, logger)
	feedHandler := handler.NewFeedHandler(appStore, validate, logger)
	chatHandler := handler.NewChatHandler(appStore, validate, logger)
	notificationHandler := handler.NewNotificationHandler(appStore, logger)
	studioHandler := handler.NewStudioHandler(generator, uploader, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		StateHandler:        stateHandler,
		AuthHandler:         authHandler,
		FeedHandler:         feedHandler,
		ChatHandler:         chatHandler,
		NotificationHandler: notificationHandler,
		StudioHandler:       studioHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, appStore)
}

// buildRemoteClient connects the backing store when a database URL is
// configured. Without one, or when the connection fails, the service
// starts against an unavailable client and serves the demo dataset.
func buildRemoteClient(cfg config.Config, logger zerolog.Logger) remote.Client {
	if cfg.DatabaseURL == "" {
		logger.Warn().Msg("no database configured, running in demo mode")
		return remote.NewUnavailableClient("remote store not configured")
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Warn().Err(err).Msg("database unreachable, running in demo mode")
		return remote.NewUnavailableClient("remote store unreachable")
	}

	if err := remote.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, session cache disabled")
			cache = nil
		}
	}

	client, err := remote.NewGormClient(db, cache, remote.GormClientConfig{
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create remote client: %v", err)
	}

	return client
}

func buildGenerator(cfg config.Config, logger zerolog.Logger) ai.Generator {
	if cfg.OpenAIAPIKey == "" {
		logger.Warn().Msg("no openai api key, caption generation serves fallbacks")
		return ai.NewStaticGenerator()
	}

	generator, err := ai.NewOpenAIGenerator(ai.OpenAIConfig{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.OpenAIModel,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("failed to create caption generator: %v", err)
	}

	return generator
}

// buildUploader returns the studio frame uploader, or nil when no
// Cloudinary credentials are configured.
func buildUploader(cfg config.Config, logger zerolog.Logger) studio.Uploader {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		logger.Warn().Msg("no cloudinary credentials, studio uploads disabled")
		return nil
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	return uploader
}

func waitForShutdown(app *fiber.App, appStore *store.Store) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	appStore.Flush()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
