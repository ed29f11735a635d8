package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/stockdesk/stockdesk/internal/apiclient"
	"github.com/stockdesk/stockdesk/internal/guard"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NotFound answers routes outside the route surface.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "page not found"})
}

// LoginRedirect builds /login?from=<path>.
func LoginRedirect(from string) string {
	if from == "" {
		return guard.PathLogin
	}
	return guard.PathLogin + "?" + url.Values{"from": {from}}.Encode()
}

// writeError maps a resource call failure to a response. A 401 already
// cleared the session, so the browser is sent back to log in.
func writeError(c *gin.Context, err error) {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		c.Redirect(http.StatusSeeOther, LoginRedirect(c.Request.URL.Path))
	case errors.Is(err, apiclient.ErrConnectionTimeout):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apiclient.ErrConnectionError):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "could not reach the inventory server"})
	case errors.Is(err, apiclient.ErrServerError):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: apiclient.UserMessage(err)})
	case errors.As(err, &apiErr):
		c.JSON(apiErr.StatusCode, ErrorResponse{Error: apiErr.Message()})
	default:
		slog.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
