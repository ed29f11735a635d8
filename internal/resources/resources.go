package resources

import (
	"context"
	"fmt"
	"io"

	"github.com/stockdesk/stockdesk/internal/apiclient"
	"github.com/stockdesk/stockdesk/internal/models"
)

// Set bundles every resource client over one apiclient.Client.
type Set struct {
	Products   *Products
	Categories *Categories
	Suppliers  *Suppliers
	Orders     *Orders
	Stock      *Stock
	Users      *Users
	Stats      *Stats
}

// New creates the resource clients.
func New(c *apiclient.Client) *Set {
	return &Set{
		Products: &Products{crud[models.Product, models.ProductInput, models.ProductInput]{
			client: c, name: "product",
			list: productList, get: productGet, create: productCreate, update: productUpdate, del: productDelete,
		}},
		Categories: &Categories{crud[models.Category, models.CategoryInput, models.CategoryInput]{
			client: c, name: "category",
			list: categoryList, get: categoryGet, create: categoryCreate, update: categoryUpdate, del: categoryDelete,
		}},
		Suppliers: &Suppliers{crud[models.Supplier, models.SupplierInput, models.SupplierInput]{
			client: c, name: "supplier",
			list: supplierList, get: supplierGet, create: supplierCreate, update: supplierUpdate, del: supplierDelete,
		}},
		Orders: &Orders{crud[models.Order, models.OrderInput, models.OrderUpdate]{
			client: c, name: "order",
			list: orderList, get: orderGet, create: orderCreate, update: orderUpdate, del: orderDelete,
		}},
		Users: &Users{crud[models.User, models.UserInput, models.UserUpdate]{
			client: c, name: "user",
			list: userList, get: userGet, create: userCreate, update: userUpdate, del: userDelete,
		}},
		Stock: &Stock{client: c},
		Stats: &Stats{client: c},
	}
}

// Products is the products collection.
type Products struct {
	crud[models.Product, models.ProductInput, models.ProductInput]
}

// UploadImage sends an image as multipart form data and returns its URL.
func (p *Products) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var out models.UploadResult
	_, err := p.client.Do(ctx, productUpload, apiclient.Call{
		File:   &apiclient.File{Field: "file", Name: filename, Reader: r},
		Result: &out,
	})
	if err != nil {
		return "", fmt.Errorf("uploading image %s: %w", filename, err)
	}
	return out.URL, nil
}

// Categories is the categories collection.
type Categories struct {
	crud[models.Category, models.CategoryInput, models.CategoryInput]
}

// Suppliers is the suppliers collection.
type Suppliers struct {
	crud[models.Supplier, models.SupplierInput, models.SupplierInput]
}

// Orders is the orders collection.
type Orders struct {
	crud[models.Order, models.OrderInput, models.OrderUpdate]
}

// Users is the users collection.
type Users struct {
	crud[models.User, models.UserInput, models.UserUpdate]
}

// Stats is the server-side summary endpoint.
type Stats struct {
	client *apiclient.Client
}

// Get returns the summary. A pass-through 4xx yields an empty summary.
func (s *Stats) Get(ctx context.Context) (*models.Stats, error) {
	var out models.Stats
	if _, err := s.client.Do(ctx, statsGet, apiclient.Call{Result: &out}); err != nil {
		return nil, fmt.Errorf("getting stats: %w", err)
	}
	if out.OrdersByStatus == nil {
		out.OrdersByStatus = map[string]int{}
	}
	return &out, nil
}
