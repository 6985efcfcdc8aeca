package models

import (
	"sort"
	"time"
)

// Bid represents a user's bid on an auction.
type Bid struct {
	ID        string       `json:"id"`
	AuctionID string       `json:"auction_id"`
	BidderID  string       `json:"bidder_id"`
	Amount    float64      `json:"amount"`
	Timestamp time.Time    `json:"timestamp"`
	Bidder    *UserSummary `json:"bidder,omitempty"`
}

// BidderName returns the embedded bidder name or the raw bidder id.
func (b Bid) BidderName() string {
	if b.Bidder != nil && b.Bidder.Name != "" {
		return b.Bidder.Name
	}
	return b.BidderID
}

// PlaceBid is the body of POST /auctions/:id/bids.
type PlaceBid struct {
	Amount float64 `json:"amount"`
}

// SortBidsForDisplay orders bids by amount descending, newest first on ties.
func SortBidsForDisplay(bids []Bid) {
	sort.SliceStable(bids, func(i, j int) bool {
		if bids[i].Amount != bids[j].Amount {
			return bids[i].Amount > bids[j].Amount
		}
		return bids[i].Timestamp.After(bids[j].Timestamp)
	})
}
