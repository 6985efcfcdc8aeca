package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/isdelr/auction-lab/internal/models"
)

// ListDisputes lists disputes, optionally narrowed to one auction.
func (c *Client) ListDisputes(ctx context.Context, auctionID string) ([]models.Dispute, error) {
	path := "/disputes"
	if auctionID != "" {
		path += "?" + url.Values{"auction_id": {auctionID}}.Encode()
	}
	var raw json.RawMessage
	if err := c.Request(ctx, path, RequestOptions{RequireAuth: true}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Dispute](raw, "disputes")
}

func (c *Client) CreateDispute(ctx context.Context, in models.NewDispute) (models.Dispute, error) {
	var dispute models.Dispute
	err := c.Request(ctx, "/disputes", RequestOptions{Method: http.MethodPost, Body: in, RequireAuth: true}, &dispute)
	return dispute, err
}
