// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"sms-relay/internal/config"
	"sms-relay/internal/domain/ports/adapter"
	"sms-relay/internal/infra/adapters/sms"
	tele "sms-relay/internal/infra/adapters/telegram"
	"sms-relay/internal/infra/logging"
	"sms-relay/internal/infra/metrics"
	"sms-relay/internal/infra/web"
	"sms-relay/internal/usecase"
)

// set via -ldflags "-X main.version=... -X main.commit=..."
var (
	version = "dev"
	commit  = "none"
)

func main() {
	// ---- CLI flags ----
	cfgPath := flag.String("config", "", "path to YAML config file (optional)")
	envFile := flag.String("env", ".env", "dotenv file loaded into the environment (optional)")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, unredacted numbers)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *envFile, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("[DEV MODE] Enabled")
	}

	// ---- Metrics ----
	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Provider ----
	sender, err := newSender(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.Relay.Provider).Msg("provider")
	}
	logger.Info().
		Str("provider", sender.Name()).
		Str("from", logging.Redact(cfg.Relay.From, cfg.Runtime.Dev)).
		Str("to", logging.Redact(cfg.Relay.To, cfg.Runtime.Dev)).
		Msg("relay provider ready")

	// ---- Use case ----
	relayUC := usecase.NewRelayUseCase(sender, usecase.RelayOptions{
		From:           cfg.Relay.From,
		To:             cfg.Relay.To,
		DefaultMessage: cfg.Relay.DefaultMessage,
		Dev:            cfg.Runtime.Dev,
	}, logger)

	// ---- HTTP ----
	srv := web.NewServer(relayUC, cfg, logger)
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigc:
		logger.Info().Str("signal", sig.String()).Msg("shutdown requested")
	case err := <-errc:
		if err != nil {
			logger.Fatal().Err(err).Msg("http server")
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	logger.Info().Msg("bye")
}

// newSender picks the outbound provider named by relay.provider.
func newSender(cfg *config.Config, logger *zerolog.Logger) (adapter.MessageSender, error) {
	switch cfg.Relay.Provider {
	case config.ProviderTwilio:
		return sms.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken)
	case config.ProviderClickatell:
		return sms.NewClickatellSender(cfg.Clickatell.Token, cfg.Clickatell.BaseURL, &http.Client{Timeout: 30 * time.Second})
	case config.ProviderTelegram:
		return tele.NewBotSender(cfg.Telegram.Token)
	case config.ProviderNoop:
		return sms.NewNoopSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Relay.Provider)
	}
}
