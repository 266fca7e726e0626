package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"littlestars/internal/config"
	"littlestars/internal/database"
	"littlestars/internal/handlers"
	"littlestars/internal/repository"
	"littlestars/internal/security"
	"littlestars/internal/service"
	"littlestars/internal/story"
)

func main() {
	// Load configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage: a database (sqlite, postgres, mysql), Redis or process memory
	var store service.KeyValueStore
	switch cfg.DatabaseType {
	case "memory":
		store = repository.NewMemoryKVStore()
		log.Println("Using in-memory storage; data is lost on restart")
	case "redis":
		client, err := repository.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to initialize redis: %v", err)
		}
		defer client.Close()

		log.Printf("Redis connection established (prefix: %s)", cfg.RedisPrefix)
		store = repository.NewRedisKVStore(client, cfg.RedisPrefix)
	default:
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()

		log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		log.Println("Migrations completed successfully")
		store = repository.NewKVRepository(db)
	}

	// Load templates
	templates, err := handlers.LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Initialize services
	progressService := service.NewProgressService(store)
	playService := service.NewPlayService(story.DefaultCatalog(), progressService, time.Now)
	authService := service.NewAuthService(store, playService)

	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.Debug)
	if err != nil {
		log.Printf("Warning: Failed to initialize email service, contact messages will not be forwarded: %v", err)
	}
	var contactService *service.ContactService
	if emailService != nil {
		contactService = service.NewContactService(emailService, cfg.ContactInbox)
	} else {
		contactService = service.NewContactService(nil, "")
	}

	registry := service.NewVisitorRegistry(cfg.VisitorIdleTimeout, time.Now)
	go registry.Run(ctx)

	// Security
	tokens := security.NewVisitorTokens(cfg.SigningSecret, cfg.VisitorCookieTTL)
	csrf := security.NewCSRFGenerator(cfg.SigningSecret)
	limiter := security.NewRateLimiter(ctx, cfg.LoginRateLimit, cfg.LoginRateWindow)

	// Initialize handlers
	middleware := handlers.NewMiddleware(tokens, registry, authService, playService, csrf, limiter)
	renderer := handlers.NewRenderer(templates, csrf, playService, time.Now)
	homeHandler := handlers.NewHomeHandler(renderer, playService, contactService)
	presentationHandler := handlers.NewPresentationHandler(nil)
	storyHandler := handlers.NewStoryHandler(renderer, playService)
	gameHandler := handlers.NewGameHandler(renderer, playService)
	authHandler := handlers.NewAuthHandler(renderer, authService, progressService)

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, middleware, homeHandler, presentationHandler, storyHandler, gameHandler, authHandler)

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
