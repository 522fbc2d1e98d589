package model

import "errors"

var errEmptyProviderID = errors.New("provider returned an empty message id")

// SendResult is the outcome of one relay attempt. Exactly one of MessageSID
// and Error is populated; build it with Sent or Failed.
type SendResult struct {
	Success    bool   `json:"success"`
	MessageSID string `json:"message_sid,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Sent records a successful provider send. An empty id is not a success.
func Sent(id string) SendResult {
	if id == "" {
		return Failed(errEmptyProviderID)
	}
	return SendResult{Success: true, MessageSID: id}
}

// Failed records a provider failure, keeping the error text as-is.
func Failed(err error) SendResult {
	if err == nil {
		err = errors.New("unknown error")
	}
	msg := err.Error()
	if msg == "" {
		msg = "unknown error"
	}
	return SendResult{Success: false, Error: msg}
}
