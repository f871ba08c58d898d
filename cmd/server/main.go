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

	"github.com/fintrack-ai/fintrack-be/internal/agent"
	"github.com/fintrack-ai/fintrack-be/internal/config"
	"github.com/fintrack-ai/fintrack-be/internal/server"
	"github.com/fintrack-ai/fintrack-be/internal/storage/postgres"
	"github.com/joho/godotenv"
)

func main() {
	loadLocalEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := postgres.New(ctx, cfg.DSN())
	if err != nil {
		logger.Error("init database", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	handle := &agent.Handle{}
	rebuild := func() (agent.Asker, error) {
		if cfg.LLMAPIKey == "" {
			return nil, errors.New("LLM_API_KEY (or GOOGLE_API_KEY) is not set")
		}
		model := agent.NewOpenAIModel(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
		return agent.New(model, store, store, logger, agent.Options{
			ModelTimeout: cfg.LLMTimeout,
			QueryTimeout: cfg.QueryTimeout,
			ModelRetries: cfg.LLMRetries,
		}), nil
	}

	// A missing model key is not fatal: CRUD keeps working and the chat
	// endpoint reports 503 until a successful reload.
	if pipeline, err := rebuild(); err != nil {
		logger.Error("ai assistant not initialized", "err", err)
	} else {
		handle.Swap(pipeline)
		logger.Info("ai assistant ready", "model", cfg.LLMModel)
	}

	srv := server.New(cfg, server.Deps{
		Users:   store,
		Records: store,
		DB:      store,
		Handle:  handle,
		Rebuild: rebuild,
		Logger:  logger,
	})

	go func() {
		logger.Info("fintrack backend listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", "err", err)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; relying on existing environment")
	}
}
