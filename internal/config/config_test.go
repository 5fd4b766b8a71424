package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT",
		"LOG_LEVEL",
		"FIREBASE_SERVICE_ACCOUNT",
		"OAUTH_TOKEN_URL",
		"FCM_ENDPOINT",
		"OUTBOUND_TIMEOUT_SECONDS",
		"TOKEN_CACHE_LEEWAY_SECONDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port: got %q, want %q", cfg.Port, "8080")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel: got %v, want %v", cfg.LogLevel, slog.LevelInfo)
	}
	if cfg.OAuth.TokenURL != "https://oauth2.googleapis.com/token" {
		t.Errorf("OAuth.TokenURL: got %q", cfg.OAuth.TokenURL)
	}
	if cfg.OAuth.TokenCacheLeeway != 60*time.Second {
		t.Errorf("OAuth.TokenCacheLeeway: got %v, want 60s", cfg.OAuth.TokenCacheLeeway)
	}
	if cfg.FCM.Endpoint != "https://fcm.googleapis.com" {
		t.Errorf("FCM.Endpoint: got %q", cfg.FCM.Endpoint)
	}
	if cfg.FCM.OutboundTimeout != 10*time.Second {
		t.Errorf("FCM.OutboundTimeout: got %v, want 10s", cfg.FCM.OutboundTimeout)
	}
	if cfg.ServiceAccountJSON != "" {
		t.Errorf("ServiceAccountJSON: got %q, want empty", cfg.ServiceAccountJSON)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FIREBASE_SERVICE_ACCOUNT", `{"type":"service_account"}`)
	t.Setenv("OAUTH_TOKEN_URL", "http://localhost:8081/token")
	t.Setenv("FCM_ENDPOINT", "http://localhost:8082")
	t.Setenv("OUTBOUND_TIMEOUT_SECONDS", "30")
	t.Setenv("TOKEN_CACHE_LEEWAY_SECONDS", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port: got %q, want %q", cfg.Port, "9090")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel: got %v, want %v", cfg.LogLevel, slog.LevelDebug)
	}
	if cfg.ServiceAccountJSON != `{"type":"service_account"}` {
		t.Errorf("ServiceAccountJSON: got %q", cfg.ServiceAccountJSON)
	}
	if cfg.OAuth.TokenURL != "http://localhost:8081/token" {
		t.Errorf("OAuth.TokenURL: got %q", cfg.OAuth.TokenURL)
	}
	if cfg.OAuth.TokenCacheLeeway != 120*time.Second {
		t.Errorf("OAuth.TokenCacheLeeway: got %v, want 120s", cfg.OAuth.TokenCacheLeeway)
	}
	if cfg.FCM.Endpoint != "http://localhost:8082" {
		t.Errorf("FCM.Endpoint: got %q", cfg.FCM.Endpoint)
	}
	if cfg.FCM.OutboundTimeout != 30*time.Second {
		t.Errorf("FCM.OutboundTimeout: got %v, want 30s", cfg.FCM.OutboundTimeout)
	}
}

func TestLoadInvalidDurations(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{name: "non-numeric outbound timeout", key: "OUTBOUND_TIMEOUT_SECONDS", value: "fast", wantErr: ErrInvalidOutboundTimeout},
		{name: "zero outbound timeout", key: "OUTBOUND_TIMEOUT_SECONDS", value: "0", wantErr: ErrInvalidOutboundTimeout},
		{name: "negative outbound timeout", key: "OUTBOUND_TIMEOUT_SECONDS", value: "-5", wantErr: ErrInvalidOutboundTimeout},
		{name: "non-numeric cache leeway", key: "TOKEN_CACHE_LEEWAY_SECONDS", value: "soon", wantErr: ErrInvalidTokenCacheLeeway},
		{name: "negative cache leeway", key: "TOKEN_CACHE_LEEWAY_SECONDS", value: "-1", wantErr: ErrInvalidTokenCacheLeeway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load error: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadZeroCacheLeewayAllowed(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_CACHE_LEEWAY_SECONDS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.OAuth.TokenCacheLeeway != 0 {
		t.Errorf("OAuth.TokenCacheLeeway: got %v, want 0", cfg.OAuth.TokenCacheLeeway)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "", want: slog.LevelInfo},
		{input: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level "+tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.want {
				t.Errorf("parseLogLevel(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateForRun(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr error
	}{
		{
			name: "credential present",
			cfg:  &Config{ServiceAccountJSON: `{"type":"service_account"}`},
		},
		{
			name:    "credential missing",
			cfg:     &Config{},
			wantErr: ErrServiceAccountMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForRun(tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateForRun error: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
