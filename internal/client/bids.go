package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/isdelr/auction-lab/internal/models"
)

// ListBids returns the bids of an auction in server order.
func (c *Client) ListBids(ctx context.Context, auctionID string) ([]models.Bid, error) {
	var raw json.RawMessage
	if err := c.Request(ctx, "/auctions/"+auctionID+"/bids", RequestOptions{}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Bid](raw, "bids")
}

// PlaceBid posts {"amount": <number>} once.
func (c *Client) PlaceBid(ctx context.Context, auctionID string, amount float64) (models.Bid, error) {
	var bid models.Bid
	err := c.Request(ctx, "/auctions/"+auctionID+"/bids", RequestOptions{
		Method:      http.MethodPost,
		Body:        models.PlaceBid{Amount: amount},
		RequireAuth: true,
	}, &bid)
	return bid, err
}
