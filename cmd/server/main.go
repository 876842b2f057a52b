package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-feed/internal/api"
	"media-feed/internal/config"
	"media-feed/internal/database"
	"media-feed/internal/events"
	"media-feed/internal/feed"
	"media-feed/internal/identity"
	"media-feed/internal/media"
	"media-feed/internal/posts"
	"media-feed/internal/store"
	"media-feed/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
)

func main() {
	cfg := config.LoadConfig()
	initLogger(cfg)
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := database.Open(cfg)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}

	provider, err := media.NewProvider(cfg)
	if err != nil {
		slog.Error("Failed to configure media provider", "provider", cfg.MediaProvider, "error", err)
		os.Exit(1)
	}
	gateway := media.NewGateway(provider, cfg.TempDir, cfg.UploadFolder, cfg.UploadTimeout)

	hub := ws.NewHub()
	go hub.Run(ctx)
	publishers := events.Multi{hub}

	if cfg.NatsURL != "" {
		nc, err := nats.Connect(cfg.NatsURL)
		if err != nil {
			slog.Error("Unable to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer nc.Close()
		publishers = append(publishers, events.NewNatsPublisher(nc))
		slog.Info("Connected to NATS", "url", cfg.NatsURL)
	}

	postStore := store.NewPostStore(db)
	directory := identity.NewDirectory(db)
	tokens := identity.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	postService := posts.NewService(gateway, postStore, publishers)
	assembler := feed.NewAssembler(postStore, directory)

	r := api.NewRouter(api.Handlers{
		Posts:       api.NewPostHandler(postService, assembler, cfg.MaxUploadBytes),
		Auth:        api.NewAuthHandler(directory, tokens),
		Tokens:      tokens,
		Users:       directory,
		LiveFeed:    hub.ServeWs,
		DB:          db,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "provider", cfg.MediaProvider, "db", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to run server", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server exited")
}

func initLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if cfg.Env == "local" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
