package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrUnauthorized is the kind of a 401 response.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrServerError is the kind of a 5xx response.
	ErrServerError = errors.New("server error")
	// ErrValidation is the kind of any other surfaced 4xx response.
	ErrValidation = errors.New("validation error")
	// ErrConnectionError wraps transport failures.
	ErrConnectionError = errors.New("connection error")
	// ErrConnectionTimeout is returned when the caller's deadline expired
	// before the server answered.
	ErrConnectionTimeout = errors.New("server unreachable")
)

// APIError represents a non-2xx response surfaced to the caller.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Detail     string
	Body       string
}

func newAPIError(ep Endpoint, resp *resty.Response) *APIError {
	body := resp.Body()
	return &APIError{
		StatusCode: resp.StatusCode(),
		Method:     ep.Method,
		Path:       ep.Path,
		Detail:     detailFrom(body),
		Body:       string(body),
	}
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// Kind returns the taxonomy sentinel for the status code.
func (e *APIError) Kind() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.StatusCode >= 500:
		return ErrServerError
	default:
		return ErrValidation
	}
}

// Unwrap lets errors.Is match the Kind sentinel.
func (e *APIError) Unwrap() error {
	return e.Kind()
}

// Message is the text to show a user: the server detail when present.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.StatusCode)
}

// detailFrom extracts {"detail": ...} from an error body. Non-string
// details (validation error lists) are returned as raw JSON.
func detailFrom(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	if string(payload.Detail) == "null" {
		return ""
	}
	return string(payload.Detail)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound returns true if the error is a 404 Not Found error.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// UserMessage renders err for display: server detail for API errors,
// the message otherwise.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}
