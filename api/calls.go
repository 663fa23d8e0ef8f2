// ABOUTME: Generic CRUD call helpers over the envelope client
// ABOUTME: One set of functions serves every resource collection
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/vestryhq/vestry/models"
)

// List fetches the full collection for a resource.
func List[E models.Entity](ctx context.Context, c *Client, resource string) ([]E, error) {
	env, err := c.do(ctx, http.MethodGet, c.endpoint(resource), nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]E](env)
}

// Get fetches one entity by id.
func Get[E models.Entity](ctx context.Context, c *Client, resource string, id models.ID) (E, error) {
	env, err := c.do(ctx, http.MethodGet, c.endpoint(resource, id.String()), nil)
	if err != nil {
		var zero E
		return zero, err
	}
	return decodeData[E](env)
}

// Create posts a new entity and returns the server's copy, id assigned.
// body may be a JSON-marshalable value or *Multipart.
func Create[E models.Entity](ctx context.Context, c *Client, resource string, body any) (E, error) {
	env, err := c.do(ctx, http.MethodPost, c.endpoint(resource), body)
	if err != nil {
		var zero E
		return zero, err
	}
	return decodeData[E](env)
}

// Update replaces an entity and returns the server's copy.
func Update[E models.Entity](ctx context.Context, c *Client, resource string, id models.ID, body any) (E, error) {
	env, err := c.do(ctx, http.MethodPut, c.endpoint(resource, id.String()), body)
	if err != nil {
		var zero E
		return zero, err
	}
	return decodeData[E](env)
}

// Delete removes an entity.
func Delete(ctx context.Context, c *Client, resource string, id models.ID) error {
	_, err := c.do(ctx, http.MethodDelete, c.endpoint(resource, id.String()), nil)
	return err
}

// DeleteAsset removes one item from an entity's asset array by position and
// returns the updated parent entity. Positions shift server-side after any
// mutation, so callers must adopt the returned entity rather than splice
// their own copy.
func DeleteAsset[E models.Entity](ctx context.Context, c *Client, resource string, id models.ID, assetType string, index int) (E, error) {
	env, err := c.do(ctx, http.MethodDelete, c.endpoint(resource, id.String(), assetType, strconv.Itoa(index)), nil)
	if err != nil {
		var zero E
		return zero, err
	}
	return decodeData[E](env)
}
