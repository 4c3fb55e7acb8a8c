package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/app"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	"github.com/Black-And-White-Club/wordle-bot/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := observability.NewLogger(os.Stdout, cfg.Observability.LogLevel, cfg.Observability.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := &app.App{}
	if err := application.Initialize(ctx, cfg, logger); err != nil {
		logger.Error("Failed to initialize application", attr.Error(err))
		_ = application.Close(context.Background())
		os.Exit(1)
	}

	runErr := application.Run(ctx)
	if runErr != nil {
		logger.Error("Application stopped unexpectedly", attr.Error(runErr))
	}

	logger.Info("Shutting down application...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := application.Close(shutdownCtx); err != nil {
		logger.Error("Shutdown completed with errors", attr.Error(err))
	}

	if runErr != nil {
		os.Exit(1)
	}
	logger.Info("Application shut down gracefully")
}
