package models

import "time"

// DisputeStatus represents the lifecycle of a dispute record.
type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "open"
	DisputeInReview DisputeStatus = "in_review"
	DisputeResolved DisputeStatus = "resolved"
	DisputeClosed   DisputeStatus = "closed"
)

// PartyRole is the side of the sale a user is on.
type PartyRole string

const (
	PartySeller PartyRole = "seller"
	PartyBuyer  PartyRole = "buyer"
)

// Dispute is filed by either party after an auction completes.
type Dispute struct {
	ID          string        `json:"id"`
	AuctionID   string        `json:"auction_id"`
	OrderID     *string       `json:"order_id,omitempty"`
	FiledBy     string        `json:"filed_by"`
	FiledByRole PartyRole     `json:"filed_by_role"`
	Reason      string        `json:"reason"`
	Status      DisputeStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	ResolvedAt  *time.Time    `json:"resolved_at,omitempty"`
}

// NewDispute is the body of POST /disputes.
type NewDispute struct {
	AuctionID string    `json:"auction_id"`
	OrderID   *string   `json:"order_id,omitempty"`
	Role      PartyRole `json:"filed_by_role"`
	Reason    string    `json:"reason"`
}
