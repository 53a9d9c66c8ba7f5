package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"github.com/arborhq/arbor/pkg/ai"
	"github.com/arborhq/arbor/pkg/bootstrap"
	"github.com/arborhq/arbor/pkg/coaching"
	"github.com/arborhq/arbor/pkg/config"
	"github.com/arborhq/arbor/pkg/logging"
	"github.com/arborhq/arbor/pkg/server"
	"github.com/arborhq/arbor/pkg/store"
)

func main() {
	envs, err := config.LoadConfig(false)
	if err != nil {
		panic(errors.Wrap(err, "failed to load config"))
	}

	logger := logging.NewBaseLogger(envs.LogLevel)
	factory := logging.NewFactory(logger)
	logger.Info("Using database path", "path", envs.DBPath)

	if err := os.MkdirAll(filepath.Dir(envs.DBPath), 0o755); err != nil {
		logger.Fatal("Failed to create database directory", "error", err)
	}

	st, err := store.NewStore(factory.ForRepository("store"), envs.DBPath)
	if err != nil {
		logger.Fatal("Failed to open store", "error", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}()

	var nc *nats.Conn
	if envs.EmbeddedNats {
		natsServer, err := bootstrap.StartEmbeddedNATSServer(factory.ForComponent("nats"))
		if err != nil {
			logger.Fatal("Failed to start embedded NATS server", "error", err)
		}
		defer natsServer.Shutdown()
	}
	nc, err = bootstrap.NewNatsClient(envs.NatsURL)
	if err != nil {
		// Analytics are fire-and-forget; run without them.
		logger.Error("Failed to connect to NATS, events disabled", "error", err)
		nc = nil
	} else {
		defer nc.Close()
	}

	aiService := ai.NewOpenAIService(factory.ForService("completions"), envs.CompletionsAPIKey, envs.CompletionsAPIURL)
	compositor := coaching.NewCompositor(coaching.DefaultTemplates())
	engine := coaching.NewEngine(factory.ForService("coaching"), aiService, compositor, nc, envs.CompletionsModel)

	srv := server.NewServer(factory.ForHandler("http"), st, engine)
	httpServer := &http.Server{
		Addr:              ":" + envs.HTTPPort,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "port", envs.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
}
