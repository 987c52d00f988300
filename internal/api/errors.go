package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	msgNetwork    = "Network error. Please check your connection."
	msgUnexpected = "An unexpected error occurred"
)

// Error is a non-2xx response from the remote API.
type Error struct {
	Status  int
	Message string
	Code    string
}

func (e *Error) Error() string { return e.Message }

// NetworkError wraps a request that never produced a response.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsStatus reports whether err is an API error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Message turns any error into the single line shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return msgNetwork
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgUnexpected
}

func newError(status int, body []byte) *Error {
	msg := bodyMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d", status)
	}
	if status == http.StatusInternalServerError {
		msg = fmt.Sprintf("Server error: %s. Please check the backend logs or try again.", msg)
	}

	code := "ERR_BAD_REQUEST"
	if status >= 500 {
		code = "ERR_BAD_RESPONSE"
	}

	return &Error{Status: status, Message: msg, Code: code}
}

// bodyMessage extracts a message from an error body. It returns "" when the
// body carries nothing usable.
func bodyMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var decoded any
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		// plain text body
		return string(trimmed)
	}

	switch v := decoded.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"message", "error"} {
			if s := fieldText(v[key]); s != "" {
				return s
			}
		}
		if len(v) == 0 {
			return ""
		}
		return compact(trimmed)
	case []any:
		return compact(trimmed)
	default:
		return ""
	}
}

func fieldText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
	case float64:
		if t == 0 {
			return ""
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func compact(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
