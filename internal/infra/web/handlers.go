package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"sms-relay/internal/domain"
	"sms-relay/internal/domain/model"
	"sms-relay/internal/infra/logging"
	"sms-relay/internal/infra/metrics"
	"sms-relay/internal/usecase"
)

const maxBodyBytes = 1 << 20

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// healthHandler answers liveness probes; it never looks at the request.
func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusOK)
		render.JSON(w, r, healthResponse{Status: "healthy"})
	}
}

// webhookHandler relays the request body's message through the use case.
// Authentication happens in secretMiddleware before this runs. A body that
// cannot be read as a JSON object is a failed relay: 500 with the decode error.
func webhookHandler(relayUC usecase.RelayUseCase, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRelayRequest(w, r)
		if err != nil {
			l := logging.With(r.Context(), logger)
			l.Warn().Err(fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)).Msg("webhook body rejected")
			metrics.IncWebhook(metrics.OutcomeInvalidBody)
			writeError(w, r, err)
			return
		}

		res := relayUC.Relay(r.Context(), req.Message)
		if !res.Success {
			metrics.IncWebhook(metrics.OutcomeFailed)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, res)
			return
		}

		metrics.IncWebhook(metrics.OutcomeSent)
		render.Status(r, http.StatusOK)
		render.JSON(w, r, res)
	}
}

var errNotObject = errors.New("request body must be a JSON object")

// decodeRelayRequest reads an optional JSON object body. An empty body is the
// same as {}.
func decodeRelayRequest(w http.ResponseWriter, r *http.Request) (model.RelayRequest, error) {
	var req model.RelayRequest
	if r.Body == nil {
		return req, nil
	}
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return req, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, err
	}
	// null, arrays and scalars never reach the relay
	if raw[0] != '{' {
		return req, errNotObject
	}
	return req, nil
}

// writeError maps errors onto HTTP responses. Anything but an auth failure
// is a failed relay.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, errorResponse{Error: "Unauthorized"})
		return
	}
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, model.Failed(err))
}
