package models

import "github.com/shopspring/decimal"

// Product is an inventory item.
type Product struct {
	ID           int             `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Description  string          `json:"description,omitempty" yaml:"description,omitempty"`
	SKU          string          `json:"sku,omitempty" yaml:"sku,omitempty"`
	Barcode      string          `json:"barcode,omitempty" yaml:"barcode,omitempty"`
	ImageURL     string          `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Price        decimal.Decimal `json:"price" yaml:"price"`
	Quantity     int             `json:"quantity" yaml:"quantity"`
	CategoryID   *int            `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	SupplierID   *int            `json:"supplier_id,omitempty" yaml:"supplier_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty" yaml:"category_name,omitempty"`
}

// ProductInput is the payload for creating or replacing a product.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Barcode     string          `json:"barcode,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CategoryID  *int            `json:"category_id,omitempty"`
	SupplierID  *int            `json:"supplier_id,omitempty"`
}

// Category groups products.
type Category struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// CategoryInput is the payload for creating or renaming a category.
type CategoryInput struct {
	Name string `json:"name"`
}

// Supplier provides products.
type Supplier struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// SupplierInput is the payload for creating or updating a supplier.
type SupplierInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// UploadResult is returned by the image upload endpoint.
type UploadResult struct {
	URL string `json:"url"`
}

func init() {
	// The API expects prices as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}
