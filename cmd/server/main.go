package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/gamenight/backend/internal/auth"
	"github.com/gamenight/backend/internal/catalog"
	"github.com/gamenight/backend/internal/config"
	"github.com/gamenight/backend/internal/handlers"
	"github.com/gamenight/backend/internal/selection"
	"github.com/gamenight/backend/internal/service"
	"github.com/gamenight/backend/internal/storage/sqlite"
	"github.com/gamenight/backend/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	creds := auth.NewCredentialService(store, jwtManager)
	backlog := service.NewBacklogService(store)
	accounts := service.NewAccountService(store)
	engine := selection.New(store, rand.New(rand.NewSource(time.Now().UnixNano())))
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogAPIKey)

	router := handlers.NewRouter(handlers.Deps{
		Credentials: creds,
		Backlog:     backlog,
		Accounts:    accounts,
		Engine:      engine,
		Catalog:     catalogClient,
	})

	// h2c allows HTTP/2 without TLS when running behind a reverse proxy
	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: h2c.NewHandler(router, &http2.Server{}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "address", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
