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

	"github.com/joho/godotenv"

	"github.com/hidalgodigital/pedbot/pkg/api"
	"github.com/hidalgodigital/pedbot/pkg/bot"
	"github.com/hidalgodigital/pedbot/pkg/municipio"
	"github.com/hidalgodigital/pedbot/pkg/sheets"
	"github.com/hidalgodigital/pedbot/pkg/store"
	"github.com/hidalgodigital/pedbot/pkg/telegram"
)

func main() {
	// Secrets come from the environment; a local .env is a convenience,
	// not a requirement.
	godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "webhook":
		cmdWebhook(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: pedbot <command>

Commands:
  serve              Start the webhook server
  webhook set        Register the webhook URL with the Bot API
  webhook delete     Remove the webhook integration
`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	debug := fs.Bool("debug", false, "enable debug logging")
	fs.Parse(args)

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(*cfgPath, logger)
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	// Canonical list: fixed for the process lifetime.
	catalog := municipio.Hidalgo
	if cfg.Matching.CatalogFile != "" {
		catalog, err = municipio.LoadCatalog(cfg.Matching.CatalogFile)
		if err != nil {
			logger.Error("failed to load catalog", "error", err)
			os.Exit(1)
		}
	}
	matcher := municipio.NewMatcher(catalog, cfg.Matching.MaxDistance)
	logger.Info("catalog loaded", "municipios", matcher.Len(), "max_distance", matcher.MaxDistance())

	fetcher := sheets.NewHTTPFetcher(cfg.Sheets.CSVURL, cfg.fetchTimeout())
	counts := sheets.NewCache(fetcher, cfg.Sheets.Column, cfg.cacheTTL(), logger)

	chats, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open registration db", "error", err)
		os.Exit(1)
	}
	defer chats.Close()

	client := telegram.NewClient(cfg.telegramToken, cfg.Telegram.APIURL)
	b := bot.New(matcher, counts, chats, client, logger, cfg.Matching.AutoApply)

	receiver := telegram.NewReceiver(cfg.webhookSecret, func(r *http.Request, u *telegram.Update) {
		b.HandleUpdate(r.Context(), u)
	}, logger)

	services := api.Services{Matcher: matcher, Counts: counts, Chats: chats, Logger: logger}
	router := api.NewRouter(services, receiver, api.NewMCPServer(services))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// SIGINT/SIGTERM: graceful shutdown. SIGHUP: force a count refresh.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, refreshing counts")
			snap := counts.Counts(ctx, true)
			logger.Info("counts refreshed", "municipios", len(snap), "rows", sheets.Total(snap))
		}
	}()

	go func() {
		logger.Info("pedbot listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}
