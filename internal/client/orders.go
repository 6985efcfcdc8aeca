package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/isdelr/auction-lab/internal/models"
)

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var raw json.RawMessage
	if err := c.Request(ctx, "/orders", RequestOptions{RequireAuth: true}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Order](raw, "orders")
}

func (c *Client) GetOrder(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	err := c.Request(ctx, "/orders/"+id, RequestOptions{RequireAuth: true}, &order)
	return order, err
}

func (c *Client) CreateOrder(ctx context.Context, in models.NewOrder) (models.Order, error) {
	var order models.Order
	err := c.Request(ctx, "/orders", RequestOptions{Method: http.MethodPost, Body: in, RequireAuth: true}, &order)
	return order, err
}

func (c *Client) UpdateOrder(ctx context.Context, id string, in models.OrderUpdate) (models.Order, error) {
	var order models.Order
	err := c.Request(ctx, "/orders/"+id, RequestOptions{Method: http.MethodPut, Body: in, RequireAuth: true}, &order)
	return order, err
}
