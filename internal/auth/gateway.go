package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/stockdesk/stockdesk/internal/apiclient"
	"github.com/stockdesk/stockdesk/internal/models"
	"github.com/stockdesk/stockdesk/internal/session"
)

// LoginEndpoint is the identity endpoint. It never carries session headers.
var LoginEndpoint = apiclient.Endpoint{
	Name:      "auth.login",
	Method:    http.MethodPost,
	Path:      "/auth/login",
	Policy:    apiclient.Surface,
	Anonymous: true,
}

// Gateway logs users in and out.
type Gateway struct {
	client  *apiclient.Client
	holder  *session.Holder
	timeout time.Duration

	mu       sync.Mutex
	onLogout []func()
}

// NewGateway creates a Gateway. A zero timeout selects DefaultLoginTimeout.
func NewGateway(client *apiclient.Client, holder *session.Holder, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultLoginTimeout
	}
	return &Gateway{client: client, holder: holder, timeout: timeout}
}

// OnLogout registers fn to run after every Logout.
func (g *Gateway) OnLogout(fn func()) {
	g.mu.Lock()
	g.onLogout = append(g.onLogout, fn)
	g.mu.Unlock()
}

// loginResponse accepts both {user, token} and a bare user object, and
// access_token as the token field name.
type loginResponse struct {
	User        *models.User `json:"user"`
	Token       string       `json:"token"`
	AccessToken string       `json:"access_token"`
}

// Login exchanges credentials for a session and persists it. Nothing is
// persisted on failure.
func (g *Gateway) Login(ctx context.Context, email, password string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Do(ctx, LoginEndpoint, apiclient.Call{
		Body: LoginRequest{Email: email, Password: password},
	})
	if err != nil {
		var apiErr *apiclient.APIError
		switch {
		case errors.As(err, &apiErr):
			slog.Warn("Login rejected", "email", email, "status", apiErr.StatusCode)
			msg := apiErr.Detail
			if msg == "" {
				msg = ErrInvalidCredentials.Error()
			}
			return nil, &InvalidCredentialsError{StatusCode: apiErr.StatusCode, Message: msg}
		case errors.Is(err, ErrConnectionTimeout):
			slog.Warn("Login timed out", "timeout", g.timeout.String())
			return nil, fmt.Errorf("login took longer than %s, check that the server is running: %w", g.timeout, ErrConnectionTimeout)
		case errors.Is(err, context.Canceled):
			return nil, err
		default:
			return nil, fmt.Errorf("could not reach the server: %w", err)
		}
	}

	sess, err := decodeLogin(resp.Body())
	if err != nil {
		return nil, err
	}
	if err := g.holder.Set(sess); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	slog.Info("User logged in", "user_id", sess.User.ID, "role", sess.User.Role)
	user := sess.User
	return &user, nil
}

func decodeLogin(body []byte) (*models.Session, error) {
	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}

	user := lr.User
	if user == nil {
		var bare models.User
		if err := json.Unmarshal(body, &bare); err != nil {
			return nil, fmt.Errorf("decoding login response: %w", err)
		}
		user = &bare
	}

	sess := &models.Session{User: *user, Token: lr.Token}
	if sess.Token == "" {
		sess.Token = lr.AccessToken
	}
	if !sess.Valid() {
		return nil, fmt.Errorf("login response has no usable user (id=%d role=%q)", user.ID, user.Role)
	}
	return sess, nil
}

// Logout clears the session and notifies the listeners. It does not call
// the server and never fails.
func (g *Gateway) Logout() {
	if err := g.holder.Clear(); err != nil {
		slog.Error("Failed to clear session on logout", "error", err)
	}
	slog.Info("User logged out")

	g.mu.Lock()
	listeners := append([]func(){}, g.onLogout...)
	g.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}
