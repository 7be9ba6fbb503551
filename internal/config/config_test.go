package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAppSecret, "shhh")
	t.Setenv(EnvValidationToken, "verify-me")
	t.Setenv(EnvPageAccessToken, "EAAtoken")
	t.Setenv(EnvServerURL, "https://bot.example.com")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.SendAPIURL != "https://graph.facebook.com/v2.6/me/messages" {
		t.Errorf("SendAPIURL = %q", cfg.SendAPIURL)
	}
	if cfg.MaxEventsPerWebhook != 100 {
		t.Errorf("MaxEventsPerWebhook = %d, want 100", cfg.MaxEventsPerWebhook)
	}
	if cfg.EventConcurrency != 4 {
		t.Errorf("EventConcurrency = %d, want 4", cfg.EventConcurrency)
	}
	if cfg.SendRateRPS != 25.0 {
		t.Errorf("SendRateRPS = %v, want 25.0", cfg.SendRateRPS)
	}
	if cfg.WebhookTimeout != WebhookProcessing {
		t.Errorf("WebhookTimeout = %v, want %v", cfg.WebhookTimeout, WebhookProcessing)
	}
	if cfg.MetricsUsername != "prometheus" {
		t.Errorf("MetricsUsername = %q, want prometheus", cfg.MetricsUsername)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvWebhookTimeout, "5s")
	t.Setenv(EnvMaxEventsPerWebhook, "10")
	t.Setenv(EnvSendRateRPS, "2.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.WebhookTimeout != 5*time.Second {
		t.Errorf("WebhookTimeout = %v, want 5s", cfg.WebhookTimeout)
	}
	if cfg.MaxEventsPerWebhook != 10 {
		t.Errorf("MaxEventsPerWebhook = %d, want 10", cfg.MaxEventsPerWebhook)
	}
	if cfg.SendRateRPS != 2.5 {
		t.Errorf("SendRateRPS = %v, want 2.5", cfg.SendRateRPS)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvAppSecret, "")
	t.Setenv(EnvValidationToken, "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() succeeded without required credentials")
	}
	for _, key := range []string{EnvAppSecret, EnvValidationToken} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("Error %q does not mention %s", err, key)
		}
	}
}

func TestLoad_RelativeServerURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvServerURL, "bot.example.com/path")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a server URL without a scheme")
	}
}

func TestLoad_TrailingSlashTrimmed(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvServerURL, "https://bot.example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerURL != "https://bot.example.com" {
		t.Errorf("ServerURL = %q, trailing slash not trimmed", cfg.ServerURL)
	}
}

func TestAssetURL(t *testing.T) {
	cfg := &Config{ServerURL: "https://bot.example.com"}

	tests := []struct {
		relPath string
		want    string
	}{
		{"assets/items/cheese_pizza.jpg", "https://bot.example.com/assets/items/cheese_pizza.jpg"},
		{"/assets/items/cheese_pizza.jpg", "https://bot.example.com/assets/items/cheese_pizza.jpg"},
		{"", "https://bot.example.com/"},
	}
	for _, tt := range tests {
		if got := cfg.AssetURL(tt.relPath); got != tt.want {
			t.Errorf("AssetURL(%q) = %q, want %q", tt.relPath, got, tt.want)
		}
	}
}

func TestValidate_NonPositiveValues(t *testing.T) {
	cfg := &Config{
		AppSecret:           "s",
		ValidationToken:     "t",
		PageAccessToken:     "p",
		ServerURL:           "https://bot.example.com",
		Port:                "8080",
		WebhookTimeout:      0,
		MaxEventsPerWebhook: -1,
		EventConcurrency:    1,
		SendTimeout:         time.Second,
		SendRateRPS:         1,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() accepted non-positive timeouts")
	}
}
