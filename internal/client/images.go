package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/isdelr/auction-lab/internal/models"
)

func (c *Client) ListImages(ctx context.Context, auctionID string) ([]models.Image, error) {
	path := "/images"
	if auctionID != "" {
		path += "?" + url.Values{"auction_id": {auctionID}}.Encode()
	}
	var raw json.RawMessage
	if err := c.Request(ctx, path, RequestOptions{}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Image](raw, "images")
}

// RequestUploadURL asks for a presigned object-storage URL for the declared file.
func (c *Client) RequestUploadURL(ctx context.Context, in models.UploadURLRequest) (models.UploadURL, error) {
	var out models.UploadURL
	err := c.Request(ctx, "/images/upload-url", RequestOptions{Method: http.MethodPost, Body: in, RequireAuth: true}, &out)
	return out, err
}

func (c *Client) RegisterImage(ctx context.Context, in models.NewImage) (models.Image, error) {
	var image models.Image
	err := c.Request(ctx, "/images", RequestOptions{Method: http.MethodPost, Body: in, RequireAuth: true}, &image)
	return image, err
}

func (c *Client) SetPrimaryImage(ctx context.Context, id string) (models.Image, error) {
	var image models.Image
	err := c.Request(ctx, "/images/"+id+"/primary", RequestOptions{Method: http.MethodPut, RequireAuth: true}, &image)
	return image, err
}

func (c *Client) DeleteImage(ctx context.Context, id string) error {
	return c.Request(ctx, "/images/"+id, RequestOptions{Method: http.MethodDelete, RequireAuth: true}, nil)
}

// PutObject uploads body straight to a presigned URL. The API's bearer token is never
// sent to object storage.
func (c *Client) PutObject(ctx context.Context, presignedURL, contentType string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.ContentLength = size
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("upload failed with status %d: %s", resp.StatusCode, raw), Body: raw}
	}
	return nil
}
