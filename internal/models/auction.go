package models

import "time"

// AuctionStatus is the bidding status of an auction.
type AuctionStatus string

const (
	AuctionActive    AuctionStatus = "active"
	AuctionEnded     AuctionStatus = "ended"
	AuctionCancelled AuctionStatus = "cancelled"
)

// WorkflowState is the post-bidding lifecycle label of an auction.
type WorkflowState string

const (
	WorkflowActive      WorkflowState = "active"
	WorkflowPendingSale WorkflowState = "pending_sale"
	WorkflowShipping    WorkflowState = "shipping"
	WorkflowComplete    WorkflowState = "complete"
)

// Valid reports whether s is one of the four known workflow states.
func (s WorkflowState) Valid() bool {
	switch s {
	case WorkflowActive, WorkflowPendingSale, WorkflowShipping, WorkflowComplete:
		return true
	}
	return false
}

// Auction represents a single auction listing.
type Auction struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"` // Rendered as raw markup
	StartingPrice float64        `json:"starting_price"`
	CurrentBid    float64        `json:"current_bid"`
	EndTime       time.Time      `json:"end_time"`
	Status        AuctionStatus  `json:"status"`
	WorkflowState *WorkflowState `json:"workflow_state,omitempty"`
	CreatedBy     string         `json:"created_by"`
	WinnerID      *string        `json:"winner_id,omitempty"`
	ClosedAt      *time.Time     `json:"closed_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	Images        []Image        `json:"images,omitempty"`
}

// Workflow returns the workflow state, treating an absent value as active.
func (a Auction) Workflow() WorkflowState {
	if a.WorkflowState == nil || !a.WorkflowState.Valid() {
		return WorkflowActive
	}
	return *a.WorkflowState
}

// HasEnded reports whether bidding is over either by status or by end time.
func (a Auction) HasEnded(now time.Time) bool {
	return a.Status != AuctionActive || !now.Before(a.EndTime)
}

// NewAuction is the body of POST /auctions. StartingPrice holds a float64 when the
// input parsed and the raw input string otherwise.
type NewAuction struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartingPrice any    `json:"starting_price"`
	EndTime       string `json:"end_time"`
}

// AuctionUpdate is the body of PUT /auctions/:id.
type AuctionUpdate struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	EndTime     *string        `json:"end_time,omitempty"`
	Status      *AuctionStatus `json:"status,omitempty"`
}

// WorkflowInfo is the payload of GET /auctions/:id/workflow.
type WorkflowInfo struct {
	AuctionID     string        `json:"auction_id"`
	WorkflowState WorkflowState `json:"workflow_state"`
	Order         *Order        `json:"order,omitempty"`
	Disputes      []Dispute     `json:"disputes,omitempty"`
}

// WorkflowFilter narrows GET /auctions/workflow.
type WorkflowFilter struct {
	Role          string // "seller" or "buyer"
	WorkflowState WorkflowState
}

// WorkflowUpdate is the body of PUT /auctions/:id/workflow. The backend applies the
// order change and the workflow advance in one transaction.
type WorkflowUpdate struct {
	Action         string        `json:"action"`
	WorkflowState  WorkflowState `json:"workflow_state"`
	OrderID        *string       `json:"order_id,omitempty"`
	OrderStatus    *OrderStatus  `json:"order_status,omitempty"`
	TrackingNumber *string       `json:"tracking_number,omitempty"`
	TrackingURL    *string       `json:"tracking_url,omitempty"`
}
