package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/coalesced/batchkv/gateway"
	"github.com/coalesced/batchkv/store"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to gateway config JSON file")
		listen     = flag.String("listen", "", "Listen address (overrides config)")
		redisAddr  = flag.String("redis", "", "Redis host:port; empty uses the in-memory store (overrides config)")
		expire     = flag.Int("expire", 0, "Entry expiration in seconds; 0 for none (overrides config)")
		flushDelay = flag.Int("flush-delay", 0, "Coalescing window in milliseconds (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := gateway.DefaultConfig()
	if *configFile != "" {
		loaded, err := gateway.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	if *listen != "" {
		cfg.Listen = *listen
	}
	if *redisAddr != "" {
		cfg.Store.Backend = store.BackendRedis
		cfg.Store.Addr = *redisAddr
	}
	if *expire > 0 {
		cfg.Coalesce.ExpireSeconds = *expire
	}
	if *flushDelay > 0 {
		cfg.Coalesce.FlushDelayMS = *flushDelay
	}

	gw, err := gateway.New(&cfg)
	if err != nil {
		log.Fatalf("Failed to create gateway: %v", err)
	}
	defer gw.Close()

	server := &http.Server{
		Addr:    cfg.Listen,
		Handler: gw.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("gateway listening",
		"addr", cfg.Listen,
		"backend", cfg.Store.Backend,
		"flush_delay_ms", cfg.Coalesce.FlushDelayMS,
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
