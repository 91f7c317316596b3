package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hidalgodigital/pedbot/pkg/telegram"
)

// cmdWebhook registers or removes the bot's webhook with the Bot API.
func cmdWebhook(args []string) {
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	action := args[0]

	fs := flag.NewFlagSet("webhook", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args[1:])

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := loadConfig(*cfgPath, logger)
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	client := telegram.NewClient(cfg.telegramToken, cfg.Telegram.APIURL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch action {
	case "set":
		if cfg.Telegram.WebhookURL == "" {
			logger.Error("telegram.webhook_url is required for webhook set")
			os.Exit(1)
		}
		err = client.SetWebhook(ctx, telegram.SetWebhookRequest{
			URL:            cfg.Telegram.WebhookURL,
			SecretToken:    cfg.webhookSecret,
			AllowedUpdates: []string{"message"},
		})
		if err != nil {
			logger.Error("setWebhook failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("webhook set: %s\n", cfg.Telegram.WebhookURL)

	case "delete":
		if err := client.DeleteWebhook(ctx); err != nil {
			logger.Error("deleteWebhook failed", "error", err)
			os.Exit(1)
		}
		fmt.Println("webhook deleted")

	default:
		usage()
		os.Exit(1)
	}
}
