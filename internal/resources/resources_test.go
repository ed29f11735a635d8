package resources

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockdesk/stockdesk/internal/apiclient"
	"github.com/stockdesk/stockdesk/internal/models"
	"github.com/stockdesk/stockdesk/internal/session"
)

type recorded struct {
	method string
	path   string
	query  string
	body   string
}

func newTestSet(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Set, func() []recorded) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(b)})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	h := session.NewHolder(session.NewMemoryStore())
	require.NoError(t, h.Set(&models.Session{
		User:  models.User{ID: 1, Name: "Ada", Email: "ada@example.com", Role: models.RoleAdmin},
		Token: "tok",
	}))
	return New(apiclient.New(srv.URL, h, nil)), func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), calls...)
	}
}

func TestProductsList(t *testing.T) {
	set, calls := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"Pen","price":2.5,"quantity":4,"category_name":"Office"}]`))
	})

	items, err := set.Products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pen", items[0].Name)
	assert.True(t, decimal.RequireFromString("2.5").Equal(items[0].Price))
	assert.Equal(t, "/products/", calls()[0].path)
}

func TestListPassesClientErrorsThrough(t *testing.T) {
	set, _ := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"nope"}`))
	})

	items, err := set.Categories.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetSurfacesNotFound(t *testing.T) {
	set, calls := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Product not found"}`))
	})

	_, err := set.Products.Get(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, apiclient.IsNotFound(err))
	assert.ErrorIs(t, err, apiclient.ErrValidation)
	assert.Equal(t, "/products/7", calls()[0].path)
}

func TestCreateSendsPayload(t *testing.T) {
	set, calls := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":3,"name":"Tools"}`))
	})

	cat, err := set.Categories.Create(context.Background(), models.CategoryInput{Name: "Tools"})
	require.NoError(t, err)
	assert.Equal(t, 3, cat.ID)

	c := calls()[0]
	assert.Equal(t, http.MethodPost, c.method)
	assert.JSONEq(t, `{"name":"Tools"}`, c.body)
}

func TestMutationRejectedIsValidation(t *testing.T) {
	set, _ := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Email already registered"}`))
	})

	_, err := set.Users.Create(context.Background(), models.UserInput{Name: "x", Email: "a@b.c", Password: "p", Role: models.RoleEmployee})
	require.Error(t, err)
	assert.ErrorIs(t, err, apiclient.ErrValidation)
	assert.Equal(t, "Email already registered", apiclient.UserMessage(err))
}

func TestOrderUpdateOmitsUnsetFields(t *testing.T) {
	set, calls := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":5,"product_id":1,"quantity":2,"status":"COMPLETED"}`))
	})

	status := models.OrderCompleted
	o, err := set.Orders.Update(context.Background(), 5, models.OrderUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, o.Status)

	c := calls()[0]
	assert.Equal(t, http.MethodPut, c.method)
	assert.Equal(t, "/orders/5", c.path)
	assert.JSONEq(t, `{"status":"COMPLETED"}`, c.body)
}

func TestDelete(t *testing.T) {
	set, calls := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"deleted"}`))
	})

	require.NoError(t, set.Suppliers.Delete(context.Background(), 9))
	assert.Equal(t, http.MethodDelete, calls()[0].method)
	assert.Equal(t, "/suppliers/9", calls()[0].path)
}

func TestStockAddAndRemove(t *testing.T) {
	set, calls := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"movement":{"id":1,"product_id":2,"type":"IN","quantity":5},"product":{"id":2,"name":"Pen","price":1,"quantity":9}}`))
	})

	change, err := set.Stock.Add(context.Background(), 2, 5, "A1")
	require.NoError(t, err)
	assert.Equal(t, 9, change.Product.Quantity)

	_, err = set.Stock.Remove(context.Background(), 2, 1, "")
	require.NoError(t, err)

	require.Len(t, calls(), 2)
	assert.Equal(t, "/stock/add", calls()[0].path)
	assert.JSONEq(t, `{"product_id":2,"quantity":5,"location":"A1","movement_type":"IN"}`, calls()[0].body)
	assert.Equal(t, "/stock/remove", calls()[1].path)
	assert.JSONEq(t, `{"product_id":2,"quantity":1,"location":null,"movement_type":"OUT"}`, calls()[1].body)
}

func TestStockCreate(t *testing.T) {
	set, calls := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"movement":{"id":7,"product_id":2,"type":"OUT","quantity":4},"product":{"id":2,"name":"Pen","price":1,"quantity":5}}`))
	})

	change, err := set.Stock.Create(context.Background(), models.StockMovementInput{ProductID: 2, Type: models.MovementOut, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 7, change.Movement.ID)

	require.Len(t, calls(), 1)
	assert.Equal(t, http.MethodPost, calls()[0].method)
	assert.Equal(t, "/stock/", calls()[0].path)
	assert.JSONEq(t, `{"product_id":2,"type":"OUT","quantity":4}`, calls()[0].body)
}

func TestStockAnalyticsQueries(t *testing.T) {
	set, calls := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/movements") {
			w.Write([]byte(`[{"date":"2026-10-01","entrees":3,"sorties":1}]`))
			return
		}
		w.Write([]byte(`[{"month":"oct.","value":1200.5,"date":"2026-10"}]`))
	})

	mv, err := set.Stock.Movements(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, mv, 1)
	assert.Equal(t, 3, mv[0].In)
	assert.Equal(t, 1, mv[0].Out)

	ev, err := set.Stock.Evolution(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, ev, 1)
	assert.InDelta(t, 1200.5, ev[0].Value, 0.001)

	assert.Equal(t, "days=7", calls()[0].query)
	assert.Equal(t, "months=6", calls()[1].query)
}

func TestStockAnalyticsSurfaceErrors(t *testing.T) {
	set, _ := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := set.Stock.Movements(context.Background(), 7)
	assert.Error(t, err)
}

func TestStatsDefaultsEmptyBreakdown(t *testing.T) {
	set, _ := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products_by_category":[{"category":"Office","count":2}],"total_stock":14}`))
	})

	st, err := set.Stats.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 14, st.TotalStock)
	assert.NotNil(t, st.OrdersByStatus)
}

func TestUploadImage(t *testing.T) {
	set, calls := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url":"/static/uploads/pen.png"}`))
	})

	url, err := set.Products.UploadImage(context.Background(), "pen.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/pen.png", url)

	c := calls()[0]
	assert.Equal(t, "/api/upload/image", c.path)
	assert.Contains(t, c.body, `name="file"; filename="pen.png"`)
	assert.Contains(t, c.body, "png-bytes")
}

func TestEndpointPolicyTable(t *testing.T) {
	seen := map[string]bool{}
	for _, ep := range Endpoints {
		assert.False(t, seen[ep.Name], "duplicate endpoint %s", ep.Name)
		seen[ep.Name] = true

		switch {
		case ep.Mutating():
			assert.Equal(t, apiclient.Surface, ep.Policy, ep.Name)
		case strings.HasSuffix(ep.Name, ".list") || ep.Name == "stats.get":
			assert.Equal(t, apiclient.PassThrough, ep.Policy, ep.Name)
		default:
			assert.Equal(t, apiclient.Surface, ep.Policy, ep.Name)
		}
		assert.False(t, ep.Anonymous, ep.Name)
	}
	assert.Len(t, Endpoints, 36)
}

func TestPayloadsEncodePriceAsNumber(t *testing.T) {
	b, err := json.Marshal(models.ProductInput{Name: "Pen", Price: decimal.RequireFromString("2.50")})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"price":2.5`)
}
