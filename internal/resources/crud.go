package resources

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stockdesk/stockdesk/internal/apiclient"
)

// crud is the list/get/create/update/delete shape shared by the plain
// collections. T is the record, C the create payload, U the update payload.
type crud[T, C, U any] struct {
	client *apiclient.Client
	name   string
	list   apiclient.Endpoint
	get    apiclient.Endpoint
	create apiclient.Endpoint
	update apiclient.Endpoint
	del    apiclient.Endpoint
}

func idParam(id int) map[string]string {
	return map[string]string{"id": strconv.Itoa(id)}
}

// List returns every record.
func (c crud[T, C, U]) List(ctx context.Context) ([]T, error) {
	var items []T
	if _, err := c.client.Do(ctx, c.list, apiclient.Call{Result: &items}); err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get returns one record.
func (c crud[T, C, U]) Get(ctx context.Context, id int) (*T, error) {
	var item T
	if _, err := c.client.Do(ctx, c.get, apiclient.Call{PathParams: idParam(id), Result: &item}); err != nil {
		return nil, fmt.Errorf("getting %s %d: %w", c.name, id, err)
	}
	return &item, nil
}

// Create adds a record and returns it as stored.
func (c crud[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	var item T
	if _, err := c.client.Do(ctx, c.create, apiclient.Call{Body: in, Result: &item}); err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.name, err)
	}
	return &item, nil
}

// Update changes a record and returns it as stored.
func (c crud[T, C, U]) Update(ctx context.Context, id int, in U) (*T, error) {
	var item T
	if _, err := c.client.Do(ctx, c.update, apiclient.Call{PathParams: idParam(id), Body: in, Result: &item}); err != nil {
		return nil, fmt.Errorf("updating %s %d: %w", c.name, id, err)
	}
	return &item, nil
}

// Delete removes a record.
func (c crud[T, C, U]) Delete(ctx context.Context, id int) error {
	if _, err := c.client.Do(ctx, c.del, apiclient.Call{PathParams: idParam(id)}); err != nil {
		return fmt.Errorf("deleting %s %d: %w", c.name, id, err)
	}
	return nil
}
