package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/isdelr/auction-lab/internal/client"
	"github.com/isdelr/auction-lab/internal/models"
)

// BidServiceProvider defines the interface for bid services.
type BidServiceProvider interface {
	ListBids(ctx context.Context, auctionID string) ([]models.Bid, error)
	PlaceBid(ctx context.Context, auction models.Auction, rawAmount string) (models.Bid, error)
}

// BidService places and lists bids.
type BidService struct {
	api    *client.Client
	events EventServiceProvider
}

// NewBidService creates a new BidService.
func NewBidService(api *client.Client, events EventServiceProvider) *BidService {
	return &BidService{api: api, events: events}
}

// ListBids returns the bids sorted for display.
func (s *BidService) ListBids(ctx context.Context, auctionID string) ([]models.Bid, error) {
	bids, err := s.api.ListBids(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	models.SortBidsForDisplay(bids)
	return bids, nil
}

// PlaceBid parses the typed amount and, if it exceeds the current bid, posts it once
// as a bare JSON number.
func (s *BidService) PlaceBid(ctx context.Context, auction models.Auction, rawAmount string) (models.Bid, error) {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return models.Bid{}, err
	}
	if amount <= auction.CurrentBid {
		return models.Bid{}, ErrBidTooLow
	}

	bid, err := s.api.PlaceBid(ctx, auction.ID, amount)
	if err != nil {
		return models.Bid{}, err
	}
	record(s.events, "bid.placed", "info", fmt.Sprintf("Bid %v on %q", amount, auction.Title), &auction.ID)
	return bid, nil
}

// ParseAmount is the only numeric check applied to a bid.
func ParseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrInvalidBid
	}
	return amount, nil
}
