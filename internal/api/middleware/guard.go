package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/stockdesk/stockdesk/internal/guard"
	"github.com/stockdesk/stockdesk/internal/models"
)

const sessionKey = "session"

// RequireRoute evaluates the route guard on every request. Unauthenticated
// requests are redirected to /login?from=<path>, role mismatches to the
// guard's forbidden redirect. Authorized requests carry the session in the
// context.
func RequireRoute(g *guard.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := g.Evaluate(c.Request.URL.Path)
		switch d.State {
		case guard.Unauthenticated:
			target := d.Redirect
			if d.From != "" {
				target += "?" + url.Values{"from": {d.From}}.Encode()
			}
			c.Redirect(http.StatusSeeOther, target)
			c.Abort()
			return
		case guard.Forbidden:
			c.Redirect(http.StatusSeeOther, d.Redirect)
			c.Abort()
			return
		case guard.NotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
			c.Abort()
			return
		}

		if d.Session != nil {
			c.Set(sessionKey, d.Session)
		}
		c.Next()
	}
}

// Session returns the session stored by RequireRoute.
func Session(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*models.Session)
	return sess
}
