package models

import "time"

// Event is an entry of the local activity log.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "bid.placed", "workflow.mark_shipped"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	AuctionID *string   `json:"auctionId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
