package apiclient

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/stockdesk/stockdesk/internal/models"
	"github.com/stockdesk/stockdesk/internal/session"
)

const (
	// HeaderUserID carries the session user id on authenticated calls.
	HeaderUserID = "X-User-ID"
	// HeaderRequestID correlates client and server logs.
	HeaderRequestID = "X-Request-ID"
)

// SessionExpiredMessage is the notification emitted when a 401 clears the session.
const SessionExpiredMessage = "Session expired or unauthorized. Please log in again."

// RequestTransform edits an outgoing request. sess is nil when logged out.
type RequestTransform func(req *resty.Request, sess *models.Session) error

// ResponseObserver inspects a received response. sess is the session the
// request was sent with, nil when it was sent without one.
type ResponseObserver func(resp *resty.Response, sess *models.Session)

// Notifier surfaces a message to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// BearerToken attaches Authorization: Bearer <token>.
func BearerToken(req *resty.Request, sess *models.Session) error {
	if sess.HasToken() {
		req.SetAuthToken(sess.Token)
	}
	return nil
}

// UserID attaches X-User-ID for sessions that carry a token.
func UserID(req *resty.Request, sess *models.Session) error {
	if sess.HasToken() && sess.User.ID != 0 {
		req.SetHeader(HeaderUserID, strconv.Itoa(sess.User.ID))
	}
	return nil
}

// RequestID attaches a fresh X-Request-ID unless the caller set one.
func RequestID(req *resty.Request, _ *models.Session) error {
	if req.Header.Get(HeaderRequestID) == "" {
		req.SetHeader(HeaderRequestID, uuid.NewString())
	}
	return nil
}

// ExpireOnUnauthorized clears the session a request was sent with when
// the server answers 401, and notifies once per clear.
func ExpireOnUnauthorized(holder *session.Holder, notifier Notifier) ResponseObserver {
	return func(resp *resty.Response, sess *models.Session) {
		if resp.StatusCode() != http.StatusUnauthorized || sess == nil || holder == nil {
			return
		}
		cleared, err := holder.ClearIfToken(sess.Token)
		if err != nil {
			slog.Error("Failed to clear session after 401", "error", err)
			return
		}
		if !cleared {
			return
		}
		slog.Warn("Session cleared after unauthorized response",
			"user_id", sess.User.ID,
			"path", resp.Request.URL,
		)
		if notifier != nil {
			notifier.Notify(SessionExpiredMessage)
		}
	}
}

// LogResponse writes one debug line per response.
func LogResponse(resp *resty.Response, _ *models.Session) {
	slog.Debug("API response",
		"method", resp.Request.Method,
		"url", resp.Request.URL,
		"status", resp.StatusCode(),
		"latency", resp.Time().String(),
		"request_id", resp.Request.Header.Get(HeaderRequestID),
	)
}
