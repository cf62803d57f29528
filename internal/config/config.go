// Package config loads service settings from the environment and the zones
// file from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// RegistryPath is the zone owner workbook; ZonesPath the YAML zones
	// file (priority order, threshold, message template).
	RegistryPath string
	ZonesPath    string

	// Telegram delivery. Notification endpoints are disabled when no bot
	// token is configured.
	TelegramToken   string
	TelegramChatID  string
	TelegramTimeout time.Duration
	TelegramEnabled bool

	// Optional Kafka export of normalized records; enabled when a topic
	// is configured.
	KafkaBrokers  []string
	ExportTopic   string
	ExportEnabled bool
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	telegramTimeout, err := parseDuration("TELEGRAM_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	telegramToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramEnabled := telegramToken != ""
	if v := os.Getenv("TELEGRAM_ENABLED"); v != "" {
		telegramEnabled = v == "true"
	}

	exportTopic := os.Getenv("KAFKA_EXPORT_TOPIC")

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		RegistryPath: envOrDefault("REGISTRY_PATH", "data/zone_owners.xlsx"),
		ZonesPath:    envOrDefault("ZONES_CONFIG", "config/zones.yaml"),

		TelegramToken:   telegramToken,
		TelegramChatID:  os.Getenv("TELEGRAM_CHAT_ID"),
		TelegramTimeout: telegramTimeout,
		TelegramEnabled: telegramEnabled,

		KafkaBrokers:  splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		ExportTopic:   exportTopic,
		ExportEnabled: exportTopic != "",
	}

	if cfg.TelegramEnabled && cfg.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_ENABLED is true but TELEGRAM_BOT_TOKEN is not set")
	}
	if cfg.TelegramEnabled && cfg.TelegramChatID == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is set but TELEGRAM_CHAT_ID is not")
	}
	if cfg.ExportEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_EXPORT_TOPIC is set but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
