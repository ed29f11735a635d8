package models

import "time"

// MovementType is the direction of a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// StockMovement records a quantity entering or leaving stock.
type StockMovement struct {
	ID           int          `json:"id" yaml:"id"`
	ProductID    int          `json:"product_id" yaml:"product_id"`
	ProductName  string       `json:"product_name,omitempty" yaml:"product_name,omitempty"`
	SKU          string       `json:"sku,omitempty" yaml:"sku,omitempty"`
	Type         MovementType `json:"type" yaml:"type"`
	Quantity     int          `json:"quantity" yaml:"quantity"`
	Location     string       `json:"location,omitempty" yaml:"location,omitempty"`
	MovementDate time.Time    `json:"movement_date" yaml:"movement_date"`
}

// StockMovementInput is the payload for recording or editing a movement.
type StockMovementInput struct {
	ProductID int          `json:"product_id"`
	Type      MovementType `json:"type"`
	Quantity  int          `json:"quantity"`
}

// StockAdjust is the payload for /stock/add and /stock/remove.
type StockAdjust struct {
	ProductID    int          `json:"product_id"`
	Quantity     int          `json:"quantity"`
	Location     *string      `json:"location"`
	MovementType MovementType `json:"movement_type"`
}

// StockChange is returned by movement-creating endpoints.
type StockChange struct {
	Movement StockMovement `json:"movement"`
	Product  Product       `json:"product"`
}

// MovementPoint is one day of the stock movement analytics series.
type MovementPoint struct {
	Date string `json:"date" yaml:"date"`
	In   int    `json:"entrees" yaml:"in"`
	Out  int    `json:"sorties" yaml:"out"`
}

// EvolutionPoint is one month of the stock value analytics series.
type EvolutionPoint struct {
	Month string  `json:"month" yaml:"month"`
	Value float64 `json:"value" yaml:"value"`
	Date  string  `json:"date" yaml:"date"`
}
