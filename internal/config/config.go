package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	DBDSN       string

	JWTSecret string
	TokenTTL  time.Duration

	SendgridAPIKey string
	FromEmail      string
	FromName       string

	SlackWebhookURL string

	TelegramToken  string
	TelegramChatID int64

	MicrosoftClientID     string
	MicrosoftClientSecret string
	MicrosoftRedirectURI  string

	ReminderLead   time.Duration
	MigrationsPath string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set variables directly.
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:                  os.Getenv("PORT"),
		Environment:           os.Getenv("ENV"),
		DBDSN:                 os.Getenv("DB_DSN"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		SendgridAPIKey:        os.Getenv("SENDGRID_API_KEY"),
		FromEmail:             os.Getenv("FROM_EMAIL"),
		FromName:              os.Getenv("FROM_NAME"),
		SlackWebhookURL:       os.Getenv("SLACK_WEBHOOK_URL"),
		TelegramToken:         os.Getenv("TELEGRAM_TOKEN"),
		MicrosoftClientID:     os.Getenv("MICROSOFT_CLIENT_ID"),
		MicrosoftClientSecret: os.Getenv("MICROSOFT_CLIENT_SECRET"),
		MicrosoftRedirectURI:  os.Getenv("MICROSOFT_REDIRECT_URI"),
		MigrationsPath:        os.Getenv("MIGRATIONS_PATH"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.FromName == "" {
		cfg.FromName = "MeetSync"
	}

	var err error
	if cfg.TokenTTL, err = parseDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ReminderLead, err = parseDuration("REMINDER_LEAD", 15*time.Minute); err != nil {
		return nil, err
	}
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		if cfg.TelegramChatID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}

func parseDuration(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 30m: %w", name, err)
	}
	return d, nil
}
