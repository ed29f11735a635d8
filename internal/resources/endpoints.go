// Package resources holds the typed clients for each API collection.
package resources

import (
	"net/http"

	"github.com/stockdesk/stockdesk/internal/apiclient"
)

// Status policy per endpoint. Collection reads pass 4xx through like the
// reference client did; single-record reads, mutations and analytics
// surface every non-2xx so callers can react or fall back.
var (
	productList   = get("products.list", "/products/", apiclient.PassThrough)
	productGet    = get("products.get", "/products/{id}", apiclient.Surface)
	productCreate = mutate("products.create", http.MethodPost, "/products/")
	productUpdate = mutate("products.update", http.MethodPut, "/products/{id}")
	productDelete = mutate("products.delete", http.MethodDelete, "/products/{id}")
	productUpload = mutate("products.upload_image", http.MethodPost, "/api/upload/image")

	categoryList   = get("categories.list", "/categories/", apiclient.PassThrough)
	categoryGet    = get("categories.get", "/categories/{id}", apiclient.Surface)
	categoryCreate = mutate("categories.create", http.MethodPost, "/categories/")
	categoryUpdate = mutate("categories.update", http.MethodPut, "/categories/{id}")
	categoryDelete = mutate("categories.delete", http.MethodDelete, "/categories/{id}")

	supplierList   = get("suppliers.list", "/suppliers/", apiclient.PassThrough)
	supplierGet    = get("suppliers.get", "/suppliers/{id}", apiclient.Surface)
	supplierCreate = mutate("suppliers.create", http.MethodPost, "/suppliers/")
	supplierUpdate = mutate("suppliers.update", http.MethodPut, "/suppliers/{id}")
	supplierDelete = mutate("suppliers.delete", http.MethodDelete, "/suppliers/{id}")

	orderList   = get("orders.list", "/orders/", apiclient.PassThrough)
	orderGet    = get("orders.get", "/orders/{id}", apiclient.Surface)
	orderCreate = mutate("orders.create", http.MethodPost, "/orders/")
	orderUpdate = mutate("orders.update", http.MethodPut, "/orders/{id}")
	orderDelete = mutate("orders.delete", http.MethodDelete, "/orders/{id}")

	stockList       = get("stock.list", "/stock/", apiclient.PassThrough)
	stockForProduct = get("stock.product", "/stock/product/{id}", apiclient.Surface)
	stockCreate     = mutate("stock.create", http.MethodPost, "/stock/")
	stockUpdate     = mutate("stock.update", http.MethodPut, "/stock/{id}")
	stockDelete     = mutate("stock.delete", http.MethodDelete, "/stock/{id}")
	stockAdd        = mutate("stock.add", http.MethodPost, "/stock/add")
	stockRemove     = mutate("stock.remove", http.MethodPost, "/stock/remove")
	stockMovements  = get("stock.movements", "/stock/movements", apiclient.Surface)
	stockEvolution  = get("stock.evolution", "/stock/evolution", apiclient.Surface)

	userList   = get("users.list", "/users/", apiclient.PassThrough)
	userGet    = get("users.get", "/users/{id}", apiclient.Surface)
	userCreate = mutate("users.create", http.MethodPost, "/users/")
	userUpdate = mutate("users.update", http.MethodPut, "/users/{id}")
	userDelete = mutate("users.delete", http.MethodDelete, "/users/{id}")

	statsGet = get("stats.get", "/stats", apiclient.PassThrough)
)

// Endpoints is the full declared table, in declaration order.
var Endpoints = []apiclient.Endpoint{
	productList, productGet, productCreate, productUpdate, productDelete, productUpload,
	categoryList, categoryGet, categoryCreate, categoryUpdate, categoryDelete,
	supplierList, supplierGet, supplierCreate, supplierUpdate, supplierDelete,
	orderList, orderGet, orderCreate, orderUpdate, orderDelete,
	stockList, stockForProduct, stockCreate, stockUpdate, stockDelete,
	stockAdd, stockRemove, stockMovements, stockEvolution,
	userList, userGet, userCreate, userUpdate, userDelete,
	statsGet,
}

func get(name, path string, policy apiclient.Policy) apiclient.Endpoint {
	return apiclient.Endpoint{Name: name, Method: http.MethodGet, Path: path, Policy: policy}
}

// mutate declares a state-changing endpoint. Mutations always surface, so
// a rejected write reaches the caller as a validation error.
func mutate(name, method, path string) apiclient.Endpoint {
	return apiclient.Endpoint{Name: name, Method: method, Path: path, Policy: apiclient.Surface}
}
