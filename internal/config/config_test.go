//go:build !integration

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sms-relay/internal/domain"
)

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"TWILIO_ACCOUNT_SID": "AC123",
		"TWILIO_AUTH_TOKEN":  "tok",
		"TWILIO_FROM_NUMBER": "+1 650 253 0000",
		"YOUR_PHONE_NUMBER":  "(650) 253-0001",
		"WEBHOOK_SECRET":     "s3cret",
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadFromEnv(t *testing.T) {
	cfg, err := load("", false, envFrom(baseEnv()))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("default port: want 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.Relay.Provider != ProviderTwilio {
		t.Errorf("default provider: want twilio, got %s", cfg.Relay.Provider)
	}
	if cfg.Relay.DefaultMessage != DefaultReminder {
		t.Errorf("default message: got %q", cfg.Relay.DefaultMessage)
	}
	if cfg.Relay.From != "+16502530000" || cfg.Relay.To != "+16502530001" {
		t.Errorf("numbers not normalized: from=%s to=%s", cfg.Relay.From, cfg.Relay.To)
	}
	if cfg.Relay.WebhookSecret != "s3cret" {
		t.Errorf("secret: got %q", cfg.Relay.WebhookSecret)
	}
	if !cfg.MetricsEnabled() {
		t.Error("metrics should default to enabled")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log defaults: %+v", cfg.Log)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeYAML(t, `
http:
  port: 9000
  metrics: false
relay:
  webhook_secret: from-yaml
  default_message: yaml reminder
  regions: [ZA]
log:
  level: debug
`)

	t.Run("yaml fills what env leaves empty", func(t *testing.T) {
		env := baseEnv()
		delete(env, "WEBHOOK_SECRET")
		env["YOUR_PHONE_NUMBER"] = "+16502530001"
		cfg, err := load(path, false, envFrom(env))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.HTTP.Port != 9000 || cfg.Relay.WebhookSecret != "from-yaml" || cfg.Relay.DefaultMessage != "yaml reminder" {
			t.Fatalf("yaml values not applied: %+v", cfg)
		}
		if cfg.MetricsEnabled() {
			t.Error("metrics should be disabled by yaml")
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("log level: got %s", cfg.Log.Level)
		}
	})

	t.Run("env overrides yaml", func(t *testing.T) {
		env := baseEnv()
		env["PORT"] = "7000"
		env["PHONE_REGIONS"] = "US, ZA"
		cfg, err := load(path, false, envFrom(env))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.HTTP.Port != 7000 || cfg.Relay.WebhookSecret != "s3cret" {
			t.Fatalf("env did not win: port=%d secret=%s", cfg.HTTP.Port, cfg.Relay.WebhookSecret)
		}
		if len(cfg.Relay.Regions) != 2 || cfg.Relay.Regions[1] != "ZA" {
			t.Fatalf("regions: %v", cfg.Relay.Regions)
		}
	})
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing secret", func(m map[string]string) { delete(m, "WEBHOOK_SECRET") }},
		{"missing recipient", func(m map[string]string) { delete(m, "YOUR_PHONE_NUMBER") }},
		{"missing sender", func(m map[string]string) { delete(m, "TWILIO_FROM_NUMBER") }},
		{"missing twilio token", func(m map[string]string) { delete(m, "TWILIO_AUTH_TOKEN") }},
		{"invalid recipient", func(m map[string]string) { m["YOUR_PHONE_NUMBER"] = "12345" }},
		{"unknown provider", func(m map[string]string) { m["RELAY_PROVIDER"] = "pigeon" }},
		{"clickatell without token", func(m map[string]string) { m["RELAY_PROVIDER"] = "clickatell" }},
		{"telegram without token", func(m map[string]string) { m["RELAY_PROVIDER"] = "telegram" }},
		{"port out of range", func(m map[string]string) { m["PORT"] = "70000" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := baseEnv()
			tc.mutate(env)
			_, err := load("", false, envFrom(env))
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Fatalf("want ErrInvalidConfig, got %v", err)
			}
		})
	}

	t.Run("non numeric port", func(t *testing.T) {
		env := baseEnv()
		env["PORT"] = "eighty"
		if _, err := load("", false, envFrom(env)); !errors.Is(err, domain.ErrInvalidConfig) {
			t.Fatalf("want ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("missing yaml file", func(t *testing.T) {
		if _, err := load(filepath.Join(t.TempDir(), "nope.yaml"), false, envFrom(baseEnv())); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestLoadProviders(t *testing.T) {
	t.Run("telegram needs a numeric chat id", func(t *testing.T) {
		env := map[string]string{
			"RELAY_PROVIDER":     "Telegram",
			"TELEGRAM_BOT_TOKEN": "123:abc",
			"YOUR_PHONE_NUMBER":  "987654321",
			"WEBHOOK_SECRET":     "s",
		}
		cfg, err := load("", false, envFrom(env))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Relay.Provider != ProviderTelegram || cfg.Relay.To != "987654321" {
			t.Fatalf("unexpected relay config: %+v", cfg.Relay)
		}

		env["YOUR_PHONE_NUMBER"] = "@channel"
		if _, err := load("", false, envFrom(env)); err == nil {
			t.Fatal("expected error for non numeric chat id")
		}
	})

	t.Run("clickatell normalizes and keeps base url default", func(t *testing.T) {
		env := baseEnv()
		env["RELAY_PROVIDER"] = "clickatell"
		env["CLICKATELL_TOKEN"] = "ct"
		cfg, err := load("", false, envFrom(env))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Clickatell.BaseURL != "https://api.clickatell.com/" {
			t.Errorf("base url: %s", cfg.Clickatell.BaseURL)
		}
		if cfg.Relay.To != "+16502530001" {
			t.Errorf("to: %s", cfg.Relay.To)
		}
	})

	t.Run("noop needs only secret and recipient", func(t *testing.T) {
		env := map[string]string{
			"RELAY_PROVIDER":    "noop",
			"YOUR_PHONE_NUMBER": "anything",
			"WEBHOOK_SECRET":    "s",
		}
		if _, err := load("", true, envFrom(env)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("e164 numbers are kept as configured", func(t *testing.T) {
		env := baseEnv()
		env["TWILIO_FROM_NUMBER"] = "+16502530000"
		env["YOUR_PHONE_NUMBER"] = "+27821234567"
		cfg, err := load("", false, envFrom(env))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Relay.From != "+16502530000" || cfg.Relay.To != "+27821234567" {
			t.Fatalf("numbers rewritten: from=%s to=%s", cfg.Relay.From, cfg.Relay.To)
		}
	})

	t.Run("alphanumeric sender passes through", func(t *testing.T) {
		env := baseEnv()
		env["TWILIO_FROM_NUMBER"] = "ACME"
		cfg, err := load("", false, envFrom(env))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Relay.From != "ACME" {
			t.Fatalf("from: %s", cfg.Relay.From)
		}
	})
}

func TestLoadConfigDotenv(t *testing.T) {
	// Every key the relay reads is pinned so the dotenv file is the only source.
	for k := range baseEnv() {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	for _, k := range []string{"PORT", "RELAY_PROVIDER", "PHONE_REGIONS", "DEFAULT_MESSAGE", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	body := "TWILIO_ACCOUNT_SID=AC1\nTWILIO_AUTH_TOKEN=tok\nTWILIO_FROM_NUMBER=+16502530000\nYOUR_PHONE_NUMBER=+16502530001\nWEBHOOK_SECRET=dotenv-secret\n"
	if err := os.WriteFile(envFile, []byte(body), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	cfg, err := LoadConfig("", envFile, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Relay.WebhookSecret != "dotenv-secret" {
		t.Fatalf("dotenv not applied: %q", cfg.Relay.WebhookSecret)
	}

	if _, err := LoadConfig("", filepath.Join(t.TempDir(), "missing.env"), false); err != nil {
		t.Fatalf("missing dotenv must be ignored, got %v", err)
	}
}
