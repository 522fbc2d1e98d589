package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"sms-relay/internal/config"
	"sms-relay/internal/usecase"
)

type Server struct {
	relayUC     usecase.RelayUseCase
	secret      string
	port        int
	corsOrigins []string
	metrics     bool
	log         *zerolog.Logger

	server *http.Server
}

func NewServer(relayUC usecase.RelayUseCase, cfg *config.Config, logger *zerolog.Logger) *Server {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}
	s := &Server{
		relayUC:     relayUC,
		secret:      cfg.Relay.WebhookSecret,
		port:        cfg.HTTP.Port,
		corsOrigins: cfg.HTTP.CORSOrigins,
		metrics:     cfg.MetricsEnabled(),
		log:         logger,
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes builds the router:
//
//	GET  /         liveness, no auth
//	POST /webhook  relay, X-Webhook-Secret required
//	GET  /metrics  prometheus, when enabled
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(TraceID())
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))

	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", secretHeader},
			ExposedHeaders: []string{traceHeader},
			MaxAge:         300,
		}))
	}

	r.Get("/", healthHandler())

	r.Group(func(pr chi.Router) {
		pr.Use(s.secretMiddleware)
		pr.Post("/webhook", webhookHandler(s.relayUC, s.log))
	})

	if s.metrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	return r
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
