package resources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/stockdesk/stockdesk/internal/apiclient"
	"github.com/stockdesk/stockdesk/internal/models"
)

// Stock is the stock movements collection plus its adjustment and
// analytics endpoints.
type Stock struct {
	client *apiclient.Client
}

// List returns every movement, newest first as the server orders them.
func (s *Stock) List(ctx context.Context) ([]models.StockMovement, error) {
	var items []models.StockMovement
	if _, err := s.client.Do(ctx, stockList, apiclient.Call{Result: &items}); err != nil {
		return nil, fmt.Errorf("listing stock movements: %w", err)
	}
	if items == nil {
		items = []models.StockMovement{}
	}
	return items, nil
}

// ForProduct returns the movements of one product.
func (s *Stock) ForProduct(ctx context.Context, productID int) ([]models.StockMovement, error) {
	var items []models.StockMovement
	if _, err := s.client.Do(ctx, stockForProduct, apiclient.Call{PathParams: idParam(productID), Result: &items}); err != nil {
		return nil, fmt.Errorf("listing movements for product %d: %w", productID, err)
	}
	if items == nil {
		items = []models.StockMovement{}
	}
	return items, nil
}

// Create records a movement and returns it with the updated product.
func (s *Stock) Create(ctx context.Context, in models.StockMovementInput) (*models.StockChange, error) {
	var out models.StockChange
	if _, err := s.client.Do(ctx, stockCreate, apiclient.Call{Body: in, Result: &out}); err != nil {
		return nil, fmt.Errorf("recording stock movement: %w", err)
	}
	return &out, nil
}

// Update edits a movement.
func (s *Stock) Update(ctx context.Context, id int, in models.StockMovementInput) (*models.StockChange, error) {
	var out models.StockChange
	if _, err := s.client.Do(ctx, stockUpdate, apiclient.Call{PathParams: idParam(id), Body: in, Result: &out}); err != nil {
		return nil, fmt.Errorf("updating stock movement %d: %w", id, err)
	}
	return &out, nil
}

// Delete removes a movement.
func (s *Stock) Delete(ctx context.Context, id int) error {
	if _, err := s.client.Do(ctx, stockDelete, apiclient.Call{PathParams: idParam(id)}); err != nil {
		return fmt.Errorf("deleting stock movement %d: %w", id, err)
	}
	return nil
}

// Add puts quantity of a product into stock.
func (s *Stock) Add(ctx context.Context, productID, quantity int, location string) (*models.StockChange, error) {
	return s.adjust(ctx, stockAdd, productID, quantity, location, models.MovementIn)
}

// Remove takes quantity of a product out of stock.
func (s *Stock) Remove(ctx context.Context, productID, quantity int, location string) (*models.StockChange, error) {
	return s.adjust(ctx, stockRemove, productID, quantity, location, models.MovementOut)
}

func (s *Stock) adjust(ctx context.Context, ep apiclient.Endpoint, productID, quantity int, location string, kind models.MovementType) (*models.StockChange, error) {
	body := models.StockAdjust{ProductID: productID, Quantity: quantity, MovementType: kind}
	if location != "" {
		body.Location = &location
	}
	var out models.StockChange
	if _, err := s.client.Do(ctx, ep, apiclient.Call{Body: body, Result: &out}); err != nil {
		return nil, fmt.Errorf("adjusting stock of product %d: %w", productID, err)
	}
	return &out, nil
}

// Movements returns the daily in/out series for the last days.
func (s *Stock) Movements(ctx context.Context, days int) ([]models.MovementPoint, error) {
	var out []models.MovementPoint
	q := url.Values{"days": {strconv.Itoa(days)}}
	if _, err := s.client.Do(ctx, stockMovements, apiclient.Call{Query: q, Result: &out}); err != nil {
		return nil, fmt.Errorf("getting movement series: %w", err)
	}
	return out, nil
}

// Evolution returns the monthly stock value series for the last months.
func (s *Stock) Evolution(ctx context.Context, months int) ([]models.EvolutionPoint, error) {
	var out []models.EvolutionPoint
	q := url.Values{"months": {strconv.Itoa(months)}}
	if _, err := s.client.Do(ctx, stockEvolution, apiclient.Call{Query: q, Result: &out}); err != nil {
		return nil, fmt.Errorf("getting stock evolution: %w", err)
	}
	return out, nil
}
