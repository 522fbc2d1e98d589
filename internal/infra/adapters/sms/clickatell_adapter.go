package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"sms-relay/internal/domain/ports/adapter"
	"sms-relay/internal/infra/msisdn"
)

var _ adapter.MessageSender = (*ClickatellSender)(nil)

const clickatellUserAgent = "sms-relay"

type clickatellMessage struct {
	To   []string `json:"to"`
	Text string   `json:"text"`
	From string   `json:"from,omitempty"`
}

type clickatellError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e clickatellError) err() error {
	if e.Description == "" && e.Code == "" {
		return nil
	}
	if e.Code == "" {
		return errors.New(e.Description)
	}
	return fmt.Errorf("%s: %s", e.Code, e.Description)
}

type clickatellSendResponse struct {
	Error *clickatellError `json:"error"`
	Data  struct {
		Message []struct {
			To           string          `json:"to"`
			APIMessageID string          `json:"apiMessageId"`
			Error        clickatellError `json:"error"`
		} `json:"message"`
	} `json:"data"`
}

// ClickatellSender talks to the Clickatell REST API (/rest/message).
type ClickatellSender struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewClickatellSender(token, baseURL string, client *http.Client) (*ClickatellSender, error) {
	if token == "" {
		return nil, errors.New("clickatell: token is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &ClickatellSender{client: client, baseURL: baseURL, token: token}, nil
}

func (s *ClickatellSender) Name() string { return "clickatell" }

func (s *ClickatellSender) Send(ctx context.Context, msg adapter.OutboundMessage) (string, error) {
	body, err := json.Marshal(clickatellMessage{
		To:   []string{msisdn.Digits(msg.To)},
		Text: msg.Body,
		From: msisdn.Digits(msg.From),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"rest/message", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	s.applyHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var out clickatellSendResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode >= 300 {
			return "", fmt.Errorf("clickatell: %s", resp.Status)
		}
		return "", fmt.Errorf("clickatell: decode response: %w", err)
	}
	if out.Error != nil {
		if err := out.Error.err(); err != nil {
			return "", err
		}
	}
	// The API reports per-recipient failures inside data.message.
	if len(out.Data.Message) == 0 {
		if resp.StatusCode >= 300 {
			return "", fmt.Errorf("clickatell: %s", resp.Status)
		}
		return "", errors.New("clickatell: empty send response")
	}
	first := out.Data.Message[0]
	if err := first.Error.err(); err != nil {
		return "", err
	}
	return first.APIMessageID, nil
}

func (s *ClickatellSender) applyHeaders(req *http.Request) {
	req.Header.Set("User-Agent", clickatellUserAgent)
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Version", "1")
}
