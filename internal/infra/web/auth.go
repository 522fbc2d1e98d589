package web

import (
	"crypto/subtle"
	"net/http"

	"sms-relay/internal/domain"
	"sms-relay/internal/infra/logging"
	"sms-relay/internal/infra/metrics"
)

const secretHeader = "X-Webhook-Secret"

// secretMiddleware admits a request only when its X-Webhook-Secret header
// equals the configured shared secret. An empty secret admits nothing.
func (s *Server) secretMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(secretHeader)
		if s.secret == "" || got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(s.secret)) != 1 {
			l := logging.With(r.Context(), s.log)
			l.Warn().Bool("header_present", got != "").Msg("webhook rejected: bad secret")
			metrics.IncWebhook(metrics.OutcomeUnauthorized)
			writeError(w, r, domain.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
