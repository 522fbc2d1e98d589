// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"sms-relay/internal/domain"
	"sms-relay/internal/infra/msisdn"
)

const (
	ProviderTwilio     = "twilio"
	ProviderClickatell = "clickatell"
	ProviderTelegram   = "telegram"
	ProviderNoop       = "noop"

	DefaultReminder = "Don't forget to make your daily commit!"
)

type RuntimeConfig struct {
	Dev bool
}

type HTTPConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
	Metrics     *bool    `yaml:"metrics"` // nil means enabled
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type RelayConfig struct {
	WebhookSecret  string   `yaml:"webhook_secret"`
	Provider       string   `yaml:"provider"` // twilio|clickatell|telegram|noop
	From           string   `yaml:"from"`
	To             string   `yaml:"to"`
	DefaultMessage string   `yaml:"default_message"`
	Regions        []string `yaml:"regions"` // tried in order when a number has no country code
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
}

type ClickatellConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
}

type TelegramConfig struct {
	Token string `yaml:"token"`
}

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Log        LogConfig        `yaml:"log"`
	Relay      RelayConfig      `yaml:"relay"`
	Twilio     TwilioConfig     `yaml:"twilio"`
	Clickatell ClickatellConfig `yaml:"clickatell"`
	Telegram   TelegramConfig   `yaml:"telegram"`

	Runtime RuntimeConfig `yaml:"-"`
}

// MetricsEnabled reports whether /metrics should be served.
func (c *Config) MetricsEnabled() bool {
	return c.HTTP.Metrics == nil || *c.HTTP.Metrics
}

// LoadConfig resolves the configuration once at startup.
// Precedence is process environment, then the YAML file at path (optional),
// then defaults. envFile names a dotenv file whose values are exported into
// the environment first; a missing dotenv file is not an error.
func LoadConfig(path, envFile string, dev bool) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return load(path, dev, os.LookupEnv)
}

func load(path string, dev bool, lookup func(string) (string, bool)) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}

	// defaults
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Relay.Provider == "" {
		cfg.Relay.Provider = ProviderTwilio
	}
	cfg.Relay.Provider = strings.ToLower(strings.TrimSpace(cfg.Relay.Provider))
	if cfg.Relay.DefaultMessage == "" {
		cfg.Relay.DefaultMessage = DefaultReminder
	}
	if len(cfg.Relay.Regions) == 0 {
		cfg.Relay.Regions = []string{"US"}
	}
	if cfg.Clickatell.BaseURL == "" {
		cfg.Clickatell.BaseURL = "https://api.clickatell.com/"
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	list := func(key string, dst *[]string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = splitList(v)
		}
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PORT %q is not a number", domain.ErrInvalidConfig, v)
		}
		cfg.HTTP.Port = port
	}
	list("CORS_ORIGINS", &cfg.HTTP.CORSOrigins)

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)

	str("WEBHOOK_SECRET", &cfg.Relay.WebhookSecret)
	str("RELAY_PROVIDER", &cfg.Relay.Provider)
	str("TWILIO_FROM_NUMBER", &cfg.Relay.From)
	str("YOUR_PHONE_NUMBER", &cfg.Relay.To)
	str("DEFAULT_MESSAGE", &cfg.Relay.DefaultMessage)
	list("PHONE_REGIONS", &cfg.Relay.Regions)

	str("TWILIO_ACCOUNT_SID", &cfg.Twilio.AccountSID)
	str("TWILIO_AUTH_TOKEN", &cfg.Twilio.AuthToken)
	str("CLICKATELL_TOKEN", &cfg.Clickatell.Token)
	str("CLICKATELL_BASE_URL", &cfg.Clickatell.BaseURL)
	str("TELEGRAM_BOT_TOKEN", &cfg.Telegram.Token)
	return nil
}

func (c *Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.HTTP.Port)
	}
	if c.Relay.WebhookSecret == "" {
		return errors.New("relay.webhook_secret (WEBHOOK_SECRET) is required")
	}
	if c.Relay.To == "" {
		return errors.New("relay.to (YOUR_PHONE_NUMBER) is required")
	}

	switch c.Relay.Provider {
	case ProviderTwilio:
		if c.Twilio.AccountSID == "" || c.Twilio.AuthToken == "" {
			return errors.New("twilio.account_sid and twilio.auth_token are required for the twilio provider")
		}
		return c.normalizeNumbers()
	case ProviderClickatell:
		if c.Clickatell.Token == "" {
			return errors.New("clickatell.token is required for the clickatell provider")
		}
		return c.normalizeNumbers()
	case ProviderTelegram:
		if c.Telegram.Token == "" {
			return errors.New("telegram.token is required for the telegram provider")
		}
		if _, err := strconv.ParseInt(c.Relay.To, 10, 64); err != nil {
			return fmt.Errorf("relay.to %q must be a numeric telegram chat id", c.Relay.To)
		}
		return nil
	case ProviderNoop:
		return nil
	default:
		return fmt.Errorf("unknown relay.provider %q", c.Relay.Provider)
	}
}

// normalizeNumbers rewrites the configured phone numbers into E.164.
func (c *Config) normalizeNumbers() error {
	if c.Relay.From == "" {
		return errors.New("relay.from (TWILIO_FROM_NUMBER) is required")
	}
	to, err := msisdn.Normalize(c.Relay.To, c.Relay.Regions)
	if err != nil {
		return fmt.Errorf("relay.to: %w", err)
	}
	from, err := msisdn.NormalizeSender(c.Relay.From, c.Relay.Regions)
	if err != nil {
		return fmt.Errorf("relay.from: %w", err)
	}
	c.Relay.To, c.Relay.From = to, from
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
