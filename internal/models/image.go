package models

import "time"

// Image is an auction photo stored in object storage.
type Image struct {
	ID          string    `json:"id"`
	AuctionID   string    `json:"auction_id"`
	URL         string    `json:"url"`
	ObjectKey   string    `json:"object_key,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size,omitempty"`
	IsPrimary   bool      `json:"is_primary"`
	CreatedAt   time.Time `json:"created_at"`
}

// UploadURLRequest is the body of POST /images/upload-url. Content type and size are
// whatever the caller claims.
type UploadURLRequest struct {
	AuctionID   string `json:"auction_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// UploadURL is the presigned target returned by the API.
type UploadURL struct {
	UploadURL string    `json:"upload_url"`
	ObjectKey string    `json:"object_key"`
	PublicURL string    `json:"public_url,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// NewImage is the body of POST /images, registering an uploaded object.
type NewImage struct {
	AuctionID   string `json:"auction_id"`
	ObjectKey   string `json:"object_key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	IsPrimary   bool   `json:"is_primary"`
}
