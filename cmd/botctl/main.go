package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tradebot-client-go/internal/botapi"
	"tradebot-client-go/internal/config"
	"tradebot-client-go/internal/logger"
	"tradebot-client-go/internal/screens"
	"tradebot-client-go/internal/session"

	"go.uber.org/zap"
)

func main() {
	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	// Open the local session store
	store, err := session.Open(cfg.Session.DSN)
	if err != nil {
		log.Fatal("Failed to open session store", zap.Error(err))
	}

	// Initialize the backend API client
	client := botapi.NewRestClient(&cfg.Server, store, log)

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Run the screen application
	app := screens.NewApp(&cfg, log, client, store, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		log.Fatal("Application failed", zap.Error(err))
	}

	log.Info("Client has been shut down.")
}
