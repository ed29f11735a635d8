package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockdesk/stockdesk/internal/api/handlers"
	"github.com/stockdesk/stockdesk/internal/app"
	"github.com/stockdesk/stockdesk/internal/config"
	"github.com/stockdesk/stockdesk/internal/models"
)

type fixture struct {
	app    *app.App
	router *gin.Engine
	flash  *handlers.Flash
}

func backend(t *testing.T, role string, unauthorized bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/auth/login":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"Incorrect email or password"}`))
				return
			}
			w.Write([]byte(`{"user":{"id":7,"name":"Sam","email":"sam@example.com","role":"` + role + `"},"token":"tok"}`))
		case unauthorized:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Token expired"}`))
		case r.URL.Path == "/products/":
			w.Write([]byte(`[{"id":1,"name":"Pen","price":2,"quantity":5}]`))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newFixture(t *testing.T, srv *httptest.Server) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		API:     config.APIConfig{BaseURL: srv.URL},
		Auth:    config.AuthConfig{LoginTimeout: time.Second},
		Session: config.SessionConfig{Backend: "memory", Slot: "auth"},
		Guard:   config.GuardConfig{ForbiddenRedirect: "/login"},
		Stock:   config.StockConfig{LowThreshold: 10},
	}
	flash := handlers.NewFlash()
	a, err := app.New(cfg, flash)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return &fixture{app: a, router: NewRouter(a, flash), flash: flash}
}

func (f *fixture) do(method, target string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) login(t *testing.T, from string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"email": {"sam@example.com"}, "password": {"secret"}}
	if from != "" {
		form.Set("from", from)
	}
	return f.do(http.MethodPost, "/login", form.Encode())
}

func TestProtectedRoutesRedirectWhenLoggedOut(t *testing.T) {
	f := newFixture(t, backend(t, "ADMIN", false))

	for _, p := range []string{"/profile", "/dashboard/admin", "/products", "/products/3", "/stock", "/users"} {
		w := f.do(http.MethodGet, p, "")
		assert.Equal(t, http.StatusSeeOther, w.Code, p)
		assert.Equal(t, "/login?from="+url.QueryEscape(p), w.Header().Get("Location"), p)
	}
}

func TestRootRedirects(t *testing.T) {
	f := newFixture(t, backend(t, "MANAGER", false))

	w := f.do(http.MethodGet, "/", "")
	assert.Equal(t, "/login", w.Header().Get("Location"))

	f.login(t, "")
	w = f.do(http.MethodGet, "/", "")
	assert.Equal(t, "/dashboard/manager", w.Header().Get("Location"))
}

func TestLoginRedirectsByRole(t *testing.T) {
	cases := map[string]string{
		"ADMIN":    "/dashboard/admin",
		"MANAGER":  "/dashboard/manager",
		"EMPLOYEE": "/dashboard/employee",
	}
	for role, want := range cases {
		t.Run(role, func(t *testing.T) {
			f := newFixture(t, backend(t, role, false))
			w := f.login(t, "")
			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, want, w.Header().Get("Location"))
		})
	}
}

func TestLoginReturnsToRequestedPage(t *testing.T) {
	f := newFixture(t, backend(t, "EMPLOYEE", false))

	w := f.login(t, "/products")
	assert.Equal(t, "/products", w.Header().Get("Location"))

	f.app.Gateway.Logout()
	w = f.login(t, "/users")
	assert.Equal(t, "/dashboard/employee", w.Header().Get("Location"), "employees cannot return to /users")
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFixture(t, backend(t, "ADMIN", false))

	form := url.Values{"email": {"sam@example.com"}, "password": {"wrong"}}
	w := f.do(http.MethodPost, "/login", form.Encode())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect email or password")
	assert.Nil(t, f.app.Holder.Current())

	w = f.do(http.MethodPost, "/login", "email=a@b.c")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoleMismatchRedirectsToLogin(t *testing.T) {
	f := newFixture(t, backend(t, "EMPLOYEE", false))
	f.login(t, "")

	w := f.do(http.MethodGet, "/orders", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = f.do(http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Items       []models.Product `json:"items"`
		Permissions struct {
			Create bool `json:"create"`
			Edit   bool `json:"edit"`
			Delete bool `json:"delete"`
		} `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Items, 1)
	assert.False(t, list.Permissions.Edit)
	assert.False(t, list.Permissions.Delete)
}

func TestUnauthorizedClearsSessionAndFlashes(t *testing.T) {
	f := newFixture(t, backend(t, "ADMIN", true))
	f.login(t, "")
	require.NotNil(t, f.app.Holder.Current())

	w := f.do(http.MethodGet, "/products", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?from=%2Fproducts", w.Header().Get("Location"))
	assert.Nil(t, f.app.Holder.Current())

	w = f.do(http.MethodGet, "/login", "")
	var page handlers.LoginPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Messages, 1)
	assert.False(t, page.LoggedIn)

	w = f.do(http.MethodGet, "/login", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Messages)
}

func TestLogout(t *testing.T) {
	f := newFixture(t, backend(t, "ADMIN", false))
	f.login(t, "")

	w := f.do(http.MethodPost, "/logout", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Nil(t, f.app.Holder.Current())
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t, backend(t, "ADMIN", false))
	w := f.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
