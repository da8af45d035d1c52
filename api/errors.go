package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/fixoncall/fixoncall-client/internal/errors"
)

// ErrUnauthorized matches any APIError for HTTP 401. By the time a caller sees it the
// gateway has already ended the session.
var ErrUnauthorized = apperrors.ErrUnauthorized

// ErrRequestFailed wraps transport failures, where no answer was received.
var ErrRequestFailed = apperrors.ErrRequestFailed

// APIError is a non-2xx answer from the remote service.
type APIError struct {
	StatusCode int
	Message    string // Server supplied message, or a generic fallback
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// errorBody is the failure envelope of the remote service: {"success": false, "error": "..."}.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newAPIError(status int, body []byte) *APIError {
	var eb errorBody
	message := ""
	if err := json.Unmarshal(body, &eb); err == nil {
		message = strings.TrimSpace(eb.Error)
		if message == "" {
			message = strings.TrimSpace(eb.Message)
		}
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return &APIError{StatusCode: status, Message: message}
}
