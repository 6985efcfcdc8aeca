package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/isdelr/auction-lab/internal/models"
)

func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var raw json.RawMessage
	if err := c.Request(ctx, "/notifications", RequestOptions{RequireAuth: true}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Notification](raw, "notifications")
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.Request(ctx, "/notifications/"+id+"/read", RequestOptions{Method: http.MethodPut, RequireAuth: true}, nil)
}
