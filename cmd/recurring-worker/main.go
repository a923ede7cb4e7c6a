package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"famfin/internal/amqp"
	"famfin/internal/backend"
	"famfin/internal/config"
	"famfin/internal/finance"
	"famfin/internal/log"
	"famfin/internal/services"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(nil).CreateBackend(backendCfg)
	if err != nil {
		logger.Error("Failed to create backend", log.FieldError, err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err)
			}
		}()
	}

	store := finance.NewStore(result.Repo)
	if err := store.Load(context.Background()); err != nil {
		logger.Error("Failed to load store from backend", log.FieldError, err)
		os.Exit(1)
	}

	var publisher services.SyncPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, materialized transactions will not sync", log.FieldError, err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
		}
	}

	service := services.NewTransactionService(store, publisher)
	processor := services.NewRecurringProcessor(store, service)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	logger.Info("Starting recurring transaction worker", "interval", cfg.RecurringInterval.String())
	if err := processor.Run(ctx, cfg.RecurringInterval); err != nil && ctx.Err() == nil {
		logger.Error("Recurring worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Recurring worker stopped gracefully")
}
