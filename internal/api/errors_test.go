package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewErrorMessage(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"plain text", 400, "bad things", "bad things"},
		{"empty body", 404, "", "Request failed with status 404"},
		{"json string", 409, `"taken"`, "taken"},
		{"message field", 400, `{"message":"Invalid trade","error":"ignored"}`, "Invalid trade"},
		{"error field", 403, `{"error":"Forbidden"}`, "Forbidden"},
		{"other object", 422, `{ "field": "receiverId" }`, `{"field":"receiverId"}`},
		{"empty object", 418, `{}`, "Request failed with status 418"},
		{"server error", 500, `{"message":"db down"}`, "Server error: db down. Please check the backend logs or try again."},
		{"server error empty", 500, ``, "Server error: Request failed with status 500. Please check the backend logs or try again."},
		{"bad gateway untouched", 502, `oops`, "oops"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := newError(tc.status, []byte(tc.body))
			assert.Equal(t, tc.want, err.Message)
			assert.Equal(t, tc.status, err.Status)
			assert.Equal(t, tc.want, Message(err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))

	netErr := &NetworkError{Method: "GET", Path: "/trades/1", Err: errors.New("connection refused")}
	assert.Equal(t, "Network error. Please check your connection.", Message(fmt.Errorf("loading: %w", netErr)))

	wrapped := fmt.Errorf("creating trade: %w", newError(400, []byte(`{"message":"nope"}`)))
	assert.Equal(t, "nope", Message(wrapped))
	assert.True(t, IsStatus(wrapped, 400))
	assert.False(t, IsStatus(wrapped, 401))

	assert.Equal(t, "plain", Message(errors.New("plain")))
	assert.Equal(t, "An unexpected error occurred", Message(errors.New("")))
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "ERR_BAD_REQUEST", newError(404, nil).Code)
	assert.Equal(t, "ERR_BAD_RESPONSE", newError(503, nil).Code)
}
