package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockdesk/stockdesk/internal/auth"
	"github.com/stockdesk/stockdesk/internal/guard"
	"github.com/stockdesk/stockdesk/internal/session"
)

// AuthHandler serves the login and logout routes.
type AuthHandler struct {
	gateway *auth.Gateway
	guard   *guard.Guard
	holder  *session.Holder
	flash   *Flash
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(gateway *auth.Gateway, g *guard.Guard, holder *session.Holder, flash *Flash) *AuthHandler {
	return &AuthHandler{gateway: gateway, guard: g, holder: holder, flash: flash}
}

// LoginPage is the view-model of GET /login.
type LoginPage struct {
	From     string   `json:"from,omitempty"`
	LoggedIn bool     `json:"logged_in"`
	Messages []string `json:"messages"`
}

// LoginForm is accepted as JSON or form data.
type LoginForm struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	From     string `json:"from" form:"from"`
}

// ShowLogin renders the login view with any pending notifications.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.JSON(http.StatusOK, LoginPage{
		From:     c.Query("from"),
		LoggedIn: h.holder.Current() != nil,
		Messages: h.flash.Drain(),
	})
}

// Login exchanges the form credentials for a session and redirects to the
// originally requested page, or the role's dashboard.
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password are required"})
		return
	}
	if form.From == "" {
		form.From = c.Query("from")
	}

	user, err := h.gateway.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		var invalid *auth.InvalidCredentialsError
		switch {
		case errors.As(err, &invalid):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: invalid.Message})
		case errors.Is(err, auth.ErrConnectionTimeout):
			c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "server unreachable"})
		default:
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "could not reach the server"})
		}
		return
	}

	c.Redirect(http.StatusSeeOther, h.guard.PostLoginPath(form.From, user.Role))
}

// Logout clears the session and returns to the login view.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.gateway.Logout()
	c.Redirect(http.StatusSeeOther, guard.PathLogin)
}

// Forbidden is the dedicated view for a role mismatch.
func (h *AuthHandler) Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, ErrorResponse{Error: "your role cannot view this page"})
}

// Root sends the user to their dashboard, or to log in.
func (h *AuthHandler) Root(c *gin.Context) {
	d := h.guard.Evaluate(guard.PathRoot)
	c.Redirect(http.StatusSeeOther, d.Redirect)
}
