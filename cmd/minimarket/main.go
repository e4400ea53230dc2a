package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/efreitasn/minimarket/internal/config"
	"github.com/efreitasn/minimarket/internal/engine"
	"github.com/efreitasn/minimarket/internal/handler"
	"github.com/efreitasn/minimarket/internal/service"
	"github.com/efreitasn/minimarket/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Instantiate stores.
	userStore := store.NewUserStore()
	securityStore := store.NewSecurityStore()
	orderStore := store.NewOrderStore()
	roundStore := store.NewRoundStore()
	matchStore := store.NewMatchStore()
	exclusionStore := store.NewExclusionStore()
	chatStore := store.NewChatStore()

	// Engine.
	roundMgr := engine.NewRoundManager(
		roundStore,
		orderStore,
		cfg.RoundLength,
		cfg.SellerCountCutoff,
		cfg.TotalSharesCutoff,
	)

	// Services (chat first — it listens for settled matches).
	chatSvc := service.NewChatService(chatStore, orderStore, userStore)
	userSvc := service.NewUserService(userStore)
	orderSvc := service.NewOrderService(orderStore, userStore, securityStore, roundStore, roundMgr)
	securitySvc := service.NewSecurityService(securityStore)
	roundSvc := service.NewRoundService(roundStore, roundMgr)
	banSvc := service.NewBanService(exclusionStore, userStore)

	// Settlement (conclusion goes through the round manager so it
	// serializes with round opening).
	settler := engine.NewSettler(orderStore, matchStore, roundMgr, exclusionStore, userStore, chatSvc)
	watcher := engine.NewWatcher(cfg.SettleInterval, roundStore, settler, logger)

	// Router.
	router := handler.NewRouter(userSvc, orderSvc, securitySvc, roundSvc, banSvc, chatSvc, logger)

	// Start settlement goroutine with cancellable context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watcher.Start(ctx)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop HTTP server, cancel context (stops the
	// settlement watcher).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}
