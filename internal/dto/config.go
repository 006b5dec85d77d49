package dto

import (
	"encoding/base64"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultPort              = "8080"
	defaultSheetRange        = "Form responses 1"
	defaultSightengineURL    = "https://api.sightengine.com/1.0"
	defaultModerationTimeout = 10 * time.Second
)

type Config struct {
	Port        string
	DatabaseURL string

	GoogleAPIKey     string
	GoogleSheetID    string
	GoogleSheetRange string

	SightengineAPIUser   string
	SightengineAPISecret string
	SightengineBaseURL   string
	ModerationTimeout    time.Duration

	FirebaseKey string
	AdminEmails []string
	RabbitMQURL string

	CORSAllowedOrigins []string
	DisplayLocation    *time.Location

	LogLevel  string
	LogFormat string
}

// LoadConfig reads the environment, after merging an optional .env file into it.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("Could not load .env file: %v", err)
	}

	cfg := Config{
		Port:                 getEnv("PORT", defaultPort),
		DatabaseURL:          strings.TrimSpace(os.Getenv("DATABASE_URL")),
		GoogleAPIKey:         os.Getenv("GOOGLE_API_KEY"),
		GoogleSheetID:        os.Getenv("GOOGLE_SHEET_ID"),
		GoogleSheetRange:     getEnv("GOOGLE_SHEET_RANGE", defaultSheetRange),
		SightengineAPIUser:   os.Getenv("SIGHTENGINE_API_USER"),
		SightengineAPISecret: os.Getenv("SIGHTENGINE_API_SECRET"),
		SightengineBaseURL:   getEnv("SIGHTENGINE_BASE_URL", defaultSightengineURL),
		ModerationTimeout:    defaultModerationTimeout,
		FirebaseKey:          os.Getenv("FIREBASE_KEY"),
		AdminEmails:          splitList(os.Getenv("ADMIN_EMAILS")),
		RabbitMQURL:          os.Getenv("RABBITMQ_URL"),
		CORSAllowedOrigins:   splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		DisplayLocation:      time.UTC,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL required")
	}

	if raw := os.Getenv("MODERATION_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, errors.New("MODERATION_TIMEOUT must be a duration such as 10s")
		}
		cfg.ModerationTimeout = timeout
	}

	if name := os.Getenv("DISPLAY_TIMEZONE"); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return Config{}, err
		}
		cfg.DisplayLocation = loc
	}

	return cfg, nil
}

func (c Config) DecodeFirebaseKey() ([]byte, error) {
	return base64.StdEncoding.DecodeString(c.FirebaseKey)
}

func (c Config) ModerationEnabled() bool {
	return c.SightengineAPIUser != "" && c.SightengineAPISecret != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
