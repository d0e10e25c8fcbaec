package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Vodeneev/pokepaste/internal/parser/pokepaste"
	"github.com/Vodeneev/pokepaste/internal/pkg/bootstrap"
	pkgconfig "github.com/Vodeneev/pokepaste/internal/pkg/config"
	"github.com/Vodeneev/pokepaste/internal/pkg/logging"
	"github.com/Vodeneev/pokepaste/internal/pkg/performance"
	"github.com/Vodeneev/pokepaste/internal/pkg/server"
)

const defaultConfigPath = "configs/pokepaste.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	flag.Parse()

	appConfig, err := pkgconfig.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := logging.SetupLogger(&appConfig.Logging, "pokepaste-server"); err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	}
	slog.Info("Config loaded successfully", "path", *configPath)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fetcher, closeCache := bootstrap.Fetcher(ctx, appConfig)
	defer closeCache()

	store, err := bootstrap.Storage(ctx, appConfig)
	if err != nil {
		return fmt.Errorf("failed to open team storage: %w", err)
	}
	if store == nil {
		slog.Warn("postgres.dsn not set, /teams endpoints are disabled")
	} else {
		defer store.Close()
	}

	deps := server.Deps{
		Parser:  &pokepaste.Parser{},
		Fetcher: fetcher,
		Storage: store,
	}
	if err := server.Run(ctx, &appConfig.Server, deps); err != nil {
		return err
	}

	performance.GetTracker().PrintSummary()
	slog.Info("Server stopped")
	return nil
}
