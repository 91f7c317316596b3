package main

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hidalgodigital/pedbot/pkg/municipio"
	"github.com/hidalgodigital/pedbot/pkg/sheets"
)

// tokenPattern matches the Bot API token shape: <digits>:<alphanum+dash>.
var tokenPattern = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]+$`)

type config struct {
	Addr   string `yaml:"addr"`
	DBPath string `yaml:"db_path"`

	Sheets struct {
		CSVURL              string `yaml:"csv_url"`
		Column              string `yaml:"column"`
		CacheTTLSeconds     int    `yaml:"cache_ttl_seconds"`
		FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"`
	} `yaml:"sheets"`

	Matching struct {
		MaxDistance int    `yaml:"max_distance"`
		AutoApply   bool   `yaml:"auto_apply"`
		CatalogFile string `yaml:"catalog_file"`
	} `yaml:"matching"`

	Telegram struct {
		APIURL     string `yaml:"api_url"`
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"telegram"`

	// Secrets, environment-only: never written to the config file.
	telegramToken string
	webhookSecret string
}

func (c *config) defaults() {
	if c.Addr == "" {
		c.Addr = ":8420"
	}
	if c.DBPath == "" {
		c.DBPath = "chatbot.db"
	}
	if c.Sheets.Column == "" {
		c.Sheets.Column = "Municipio"
	}
	if c.Sheets.CacheTTLSeconds <= 0 {
		c.Sheets.CacheTTLSeconds = int(sheets.DefaultTTL / time.Second)
	}
	if c.Sheets.FetchTimeoutSeconds <= 0 {
		c.Sheets.FetchTimeoutSeconds = 60
	}
	if c.Matching.MaxDistance <= 0 {
		c.Matching.MaxDistance = municipio.DefaultMaxDistance
	}
	if c.Telegram.APIURL == "" {
		c.Telegram.APIURL = "https://api.telegram.org"
	}
}

func (c *config) validate() error {
	if c.Sheets.CSVURL == "" {
		return fmt.Errorf("sheets.csv_url is required")
	}
	if u, err := url.Parse(c.Sheets.CSVURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("sheets.csv_url must be a valid http/https URL, got %q", c.Sheets.CSVURL)
	}
	if c.telegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	if !tokenPattern.MatchString(c.telegramToken) {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN format invalid (expected <bot_id>:<hash>)")
	}
	return nil
}

// loadConfig reads the YAML config (missing file = defaults), overlays
// environment secrets, applies defaults and validates.
func loadConfig(path string, logger *slog.Logger) (config, error) {
	var cfg config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		logger.Info("no config file, using defaults", "path", path)
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.telegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.webhookSecret = os.Getenv("TELEGRAM_WEBHOOK_SECRET")

	cfg.defaults()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *config) cacheTTL() time.Duration {
	return time.Duration(c.Sheets.CacheTTLSeconds) * time.Second
}

func (c *config) fetchTimeout() time.Duration {
	return time.Duration(c.Sheets.FetchTimeoutSeconds) * time.Second
}
