package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudnotes/api/internal/config"
	"github.com/cloudnotes/api/internal/database"
	"github.com/cloudnotes/api/internal/handler"
	"github.com/cloudnotes/api/internal/middleware"
	"github.com/cloudnotes/api/internal/repository"
	"github.com/cloudnotes/api/internal/service"
	"github.com/cloudnotes/api/pkg/jwt"
	"github.com/joho/godotenv"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env if present; real environment variables win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Development convenience: generate a throwaway signing secret. Every
	// restart invalidates all outstanding tokens, which is why production
	// refuses to start without SECRET_KEY.
	secret := cfg.JWT.Secret
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			slog.Error("failed to generate signing secret", slog.String("error", err.Error()))
			os.Exit(1)
		}
		secret = hex.EncodeToString(buf)
		slog.Warn("SECRET_KEY not set, generated a temporary signing secret; tokens will not survive a restart")
	}

	ctx := context.Background()

	// Provision and migrate the database, then connect the pool
	if err := database.EnsureDatabase(ctx, cfg.Database.URL); err != nil {
		slog.Error("failed to ensure database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.Migrate(cfg.Database.URL); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := database.Connect(ctx, cfg.Database.URL)
	if err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// Initialize token service
	tokens, err := jwt.NewService(jwt.Config{
		Secret:     []byte(secret),
		Issuer:     cfg.JWT.Issuer,
		Expiration: cfg.JWT.Expiration,
	})
	if err != nil {
		slog.Error("failed to initialize token service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo: userRepo,
		Tokens:   tokens,
	})
	noteService := service.NewNoteService(noteRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handler.Root)
	mux.HandleFunc("GET /healthz", handler.Health)
	mux.HandleFunc("GET /favicon.ico", handler.Favicon)

	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)

	// Protected routes
	authMiddleware := middleware.Auth(authService)

	mux.Handle("GET /me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	mux.Handle("POST /notes", authMiddleware(http.HandlerFunc(noteHandler.Create)))
	mux.Handle("GET /notes", authMiddleware(http.HandlerFunc(noteHandler.List)))
	mux.Handle("PUT /notes/{id}", authMiddleware(http.HandlerFunc(noteHandler.Update)))
	mux.Handle("DELETE /notes/{id}", authMiddleware(http.HandlerFunc(noteHandler.Delete)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
