package apiclient

import (
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Policy decides which non-2xx responses an endpoint surfaces as errors.
type Policy int

const (
	// Surface turns every non-2xx response into an *APIError.
	Surface Policy = iota
	// PassThrough returns 4xx responses as normal results. 401 and 5xx
	// still surface.
	PassThrough
)

func (p Policy) String() string {
	if p == PassThrough {
		return "pass-through"
	}
	return "surface"
}

// Endpoint is one declared API call. Path may hold {name} placeholders
// filled from Call.PathParams.
type Endpoint struct {
	Name   string
	Method string
	Path   string
	Policy Policy
	// Anonymous endpoints never carry session headers and never expire
	// the session.
	Anonymous bool
}

// Mutating reports whether the endpoint changes server state.
func (e Endpoint) Mutating() bool {
	switch e.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// check applies the endpoint policy to a received response.
func (e Endpoint) check(resp *resty.Response) error {
	code := resp.StatusCode()
	if code < 400 {
		return nil
	}
	if e.Policy == PassThrough && code < 500 && code != http.StatusUnauthorized {
		return nil
	}
	return newAPIError(e, resp)
}
