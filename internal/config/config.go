package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTokenURL    = "https://oauth2.googleapis.com/token"
	defaultFCMEndpoint = "https://fcm.googleapis.com"

	defaultOutboundTimeoutSeconds  = 10
	defaultTokenCacheLeewaySeconds = 60
)

type Config struct {
	Port     string
	LogLevel slog.Level

	// ServiceAccountJSON is the raw service account document held by the
	// FIREBASE_SERVICE_ACCOUNT secret. Never log its contents.
	ServiceAccountJSON string

	OAuth OAuthConfig
	FCM   FCMConfig
}

type OAuthConfig struct {
	TokenURL         string
	TokenCacheLeeway time.Duration
}

type FCMConfig struct {
	Endpoint        string
	OutboundTimeout time.Duration
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	tokenURL := os.Getenv("OAUTH_TOKEN_URL")
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	endpoint := os.Getenv("FCM_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultFCMEndpoint
	}

	outboundTimeout := defaultOutboundTimeoutSeconds
	if raw := os.Getenv("OUTBOUND_TIMEOUT_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidOutboundTimeout
		}
		outboundTimeout = parsed
	}

	tokenCacheLeeway := defaultTokenCacheLeewaySeconds
	if raw := os.Getenv("TOKEN_CACHE_LEEWAY_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return nil, ErrInvalidTokenCacheLeeway
		}
		tokenCacheLeeway = parsed
	}

	return &Config{
		Port:               port,
		LogLevel:           parseLogLevel(os.Getenv("LOG_LEVEL")),
		ServiceAccountJSON: os.Getenv("FIREBASE_SERVICE_ACCOUNT"),
		OAuth: OAuthConfig{
			TokenURL:         tokenURL,
			TokenCacheLeeway: time.Duration(tokenCacheLeeway) * time.Second,
		},
		FCM: FCMConfig{
			Endpoint:        endpoint,
			OutboundTimeout: time.Duration(outboundTimeout) * time.Second,
		},
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
