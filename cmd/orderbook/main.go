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

	"github.com/kynetiq/orderbook/internal/config"
	"github.com/kynetiq/orderbook/internal/domain"
	"github.com/kynetiq/orderbook/internal/engine"
	"github.com/kynetiq/orderbook/internal/handler"
	"github.com/kynetiq/orderbook/internal/service"
	"github.com/kynetiq/orderbook/internal/store"
	"github.com/kynetiq/orderbook/internal/stream"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8085"
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

	// Trade feed and ledger.
	feed := stream.NewHub[domain.Trade]()
	ledger := store.NewTradeLedger(feed)

	// Engine around one book for the configured instrument.
	book := engine.NewBook()
	validator := engine.NewValidator(cfg.Instrument)
	manager := engine.NewManager(book)
	matcher := engine.NewMatcher(ledger)

	svc := service.NewOrderBookService(cfg.Instrument, book, validator, manager, matcher, ledger)

	// Handlers and router.
	authH := handler.NewAuthHandler(cfg.APIUsername, cfg.APIPassword, cfg.JWTSecret, cfg.TokenTTL)
	orderH := handler.NewOrderHandler(svc)
	bookH := handler.NewBookHandler(svc)
	tradeH := handler.NewTradeHandler(svc)
	streamH := handler.NewStreamHandler(feed, logger)

	router := handler.NewRouter(orderH, bookH, tradeH, streamH, authH, logger)

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
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("instrument", cfg.Instrument),
		)
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

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
