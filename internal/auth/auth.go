// Package auth performs the login exchange and owns session teardown.
package auth

import (
	"errors"
	"time"

	"github.com/stockdesk/stockdesk/internal/apiclient"
)

// DefaultLoginTimeout bounds the wait for the identity endpoint.
const DefaultLoginTimeout = 10 * time.Second

var (
	// ErrInvalidCredentials is wrapped by every rejected login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrConnectionTimeout is returned when the identity endpoint did not
	// answer within the login timeout.
	ErrConnectionTimeout = apiclient.ErrConnectionTimeout
	// ErrConnectionError is returned for any other transport failure.
	ErrConnectionError = apiclient.ErrConnectionError
)

// InvalidCredentialsError carries the server's explanation for a rejected login.
type InvalidCredentialsError struct {
	StatusCode int
	Message    string
}

func (e *InvalidCredentialsError) Error() string {
	return e.Message
}

func (e *InvalidCredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}

// LoginRequest is the identity endpoint payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
