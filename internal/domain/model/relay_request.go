package model

// RelayRequest is the inbound webhook body. Message is nil when the field
// is absent or null.
type RelayRequest struct {
	Message *string `json:"message"`
}

// Text returns the message to send, or fallback when none was given.
func (r RelayRequest) Text(fallback string) string {
	if r.Message == nil {
		return fallback
	}
	return *r.Message
}
