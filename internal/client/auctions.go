package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/isdelr/auction-lab/internal/models"
)

// Auction ids are interpolated into paths exactly as given.

func (c *Client) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	var raw json.RawMessage
	if err := c.Request(ctx, "/auctions", RequestOptions{}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Auction](raw, "auctions")
}

func (c *Client) GetAuction(ctx context.Context, id string) (models.Auction, error) {
	var auction models.Auction
	err := c.Request(ctx, "/auctions/"+id, RequestOptions{}, &auction)
	return auction, err
}

func (c *Client) CreateAuction(ctx context.Context, in models.NewAuction) (models.Auction, error) {
	var auction models.Auction
	err := c.Request(ctx, "/auctions", RequestOptions{Method: http.MethodPost, Body: in, RequireAuth: true}, &auction)
	return auction, err
}

func (c *Client) UpdateAuction(ctx context.Context, id string, in models.AuctionUpdate) (models.Auction, error) {
	var auction models.Auction
	err := c.Request(ctx, "/auctions/"+id, RequestOptions{Method: http.MethodPut, Body: in, RequireAuth: true}, &auction)
	return auction, err
}

func (c *Client) DeleteAuction(ctx context.Context, id string) error {
	return c.Request(ctx, "/auctions/"+id, RequestOptions{Method: http.MethodDelete, RequireAuth: true}, nil)
}

// CloseAuction ends bidding; the backend moves the auction to pending_sale.
func (c *Client) CloseAuction(ctx context.Context, id string) (models.Auction, error) {
	var auction models.Auction
	err := c.Request(ctx, "/auctions/"+id+"/close", RequestOptions{Method: http.MethodPost, RequireAuth: true}, &auction)
	return auction, err
}

func (c *Client) GetWorkflow(ctx context.Context, id string) (models.WorkflowInfo, error) {
	var info models.WorkflowInfo
	err := c.Request(ctx, "/auctions/"+id+"/workflow", RequestOptions{RequireAuth: true}, &info)
	return info, err
}

func (c *Client) UpdateWorkflow(ctx context.Context, id string, in models.WorkflowUpdate) (models.WorkflowInfo, error) {
	var info models.WorkflowInfo
	err := c.Request(ctx, "/auctions/"+id+"/workflow", RequestOptions{Method: http.MethodPut, Body: in, RequireAuth: true}, &info)
	return info, err
}

// ListWorkflowAuctions returns auctions in the post-bidding workflow, filtered by the
// caller's role and optionally by state.
func (c *Client) ListWorkflowAuctions(ctx context.Context, filter models.WorkflowFilter) ([]models.Auction, error) {
	query := url.Values{}
	if filter.Role != "" {
		query.Set("role", filter.Role)
	}
	if filter.WorkflowState != "" {
		query.Set("workflow_state", string(filter.WorkflowState))
	}
	path := "/auctions/workflow"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var raw json.RawMessage
	if err := c.Request(ctx, path, RequestOptions{RequireAuth: true}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Auction](raw, "auctions")
}
