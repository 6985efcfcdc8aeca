package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is returned for any non-2xx response. Message is the server's own text,
// unredacted, so debug output and stack traces reach the caller as sent.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return e.Message
}

// newAPIError extracts "message", falling back to "error", from a JSON error body.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: body}

	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := rawText(payload.Message); msg != "" {
			apiErr.Message = msg
			return apiErr
		}
		if msg := rawText(payload.Error); msg != "" {
			apiErr.Message = msg
			return apiErr
		}
	}

	apiErr.Message = fmt.Sprintf("HTTP error! status: %d", status)
	return apiErr
}

// rawText renders a JSON string as-is and any other JSON value in its encoded form.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
