package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is a purchase order for a single product.
type Order struct {
	ID          int         `json:"id" yaml:"id"`
	ProductID   int         `json:"product_id" yaml:"product_id"`
	ProductName string      `json:"product_name,omitempty" yaml:"product_name,omitempty"`
	Quantity    int         `json:"quantity" yaml:"quantity"`
	Status      OrderStatus `json:"status" yaml:"status"`
}

// OrderInput is the payload for creating an order.
type OrderInput struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// OrderUpdate is the payload for updating an order. Nil fields are left unchanged.
type OrderUpdate struct {
	Quantity *int         `json:"quantity,omitempty"`
	Status   *OrderStatus `json:"status,omitempty"`
}
