package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vodeneev/pokepaste/internal/pkg/bootstrap"
	pkgconfig "github.com/Vodeneev/pokepaste/internal/pkg/config"
	"github.com/Vodeneev/pokepaste/internal/pkg/logging"
)

const defaultConfigPath = "configs/pokepaste.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("Telegram bot failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var token string
	var allowedUsers string

	flag.StringVar(&configPath, "config", defaultConfigPath, "Path to config file")
	flag.StringVar(&token, "token", "", "Telegram bot token (or telegram.token / TELEGRAM_BOT_TOKEN)")
	flag.StringVar(&allowedUsers, "allowed-users", "", "Comma-separated list of allowed user IDs (optional)")
	flag.Parse()

	appConfig, err := pkgconfig.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if token != "" {
		appConfig.Telegram.Token = token
	}
	if appConfig.Telegram.Token == "" {
		return fmt.Errorf("telegram bot token is required: set -token, telegram.token or TELEGRAM_BOT_TOKEN")
	}
	if allowedUsers != "" {
		appConfig.Telegram.AllowedUserIDs = append(appConfig.Telegram.AllowedUserIDs, parseUserIDs(allowedUsers)...)
	}

	if _, err := logging.SetupLogger(&appConfig.Logging, "telegram-bot"); err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	api, err := tgbotapi.NewBotAPI(appConfig.Telegram.Token)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	api.Debug = false
	slog.Info("Authorized on account", "username", api.Self.UserName)

	fetcher, closeCache := bootstrap.Fetcher(ctx, appConfig)
	defer closeCache()

	b := newBot(api, fetcher, appConfig.Telegram.AllowedUserIDs)
	if appConfig.Fetcher.Timeout > 0 {
		b.timeout = appConfig.Fetcher.Timeout
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = appConfig.Telegram.UpdateTimeout
	updates := api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			slog.Info("Telegram bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func parseUserIDs(list string) []int64 {
	var ids []int64
	for _, idStr := range strings.Split(list, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
