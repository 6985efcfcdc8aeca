package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/isdelr/auction-lab/internal/client"
	"github.com/isdelr/auction-lab/internal/models"
)

// AuctionServiceProvider defines the interface for auction services.
type AuctionServiceProvider interface {
	ListAuctions(ctx context.Context) ([]models.Auction, error)
	GetAuction(ctx context.Context, id string) (models.Auction, error)
	CreateAuction(ctx context.Context, form AuctionForm) (models.Auction, error)
	UpdateAuction(ctx context.Context, id string, update models.AuctionUpdate) (models.Auction, error)
	DeleteAuction(ctx context.Context, id string) error
	ListWorkflowAuctions(ctx context.Context, filter models.WorkflowFilter) ([]models.Auction, error)
}

// AuctionForm is the raw user input of the create-auction form.
type AuctionForm struct {
	Title         string
	Description   string
	StartingPrice string
	EndTime       string
}

// Accepted end time layouts: RFC 3339 and the browser datetime-local format.
var endTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02T15:04:05"}

// AuctionService provides the auction views with data.
type AuctionService struct {
	api    *client.Client
	events EventServiceProvider
	now    func() time.Time
}

// NewAuctionService creates a new AuctionService.
func NewAuctionService(api *client.Client, events EventServiceProvider) *AuctionService {
	return &AuctionService{api: api, events: events, now: time.Now}
}

func (s *AuctionService) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	return s.api.ListAuctions(ctx)
}

// GetAuction fetches one auction. The id reaches the request path unmodified.
func (s *AuctionService) GetAuction(ctx context.Context, id string) (models.Auction, error) {
	return s.api.GetAuction(ctx, id)
}

// CreateAuction applies the two client-side checks that exist: a starting price that
// parses must be positive, and an end time that parses must be in the future. Input
// that does not parse, and the title and description, are sent as typed.
func (s *AuctionService) CreateAuction(ctx context.Context, form AuctionForm) (models.Auction, error) {
	payload := models.NewAuction{
		Title:         form.Title,
		Description:   form.Description,
		StartingPrice: form.StartingPrice,
		EndTime:       form.EndTime,
	}

	if price, err := strconv.ParseFloat(strings.TrimSpace(form.StartingPrice), 64); err == nil && !math.IsNaN(price) && !math.IsInf(price, 0) {
		if price <= 0 {
			return models.Auction{}, ErrInvalidStartingPrice
		}
		payload.StartingPrice = price
	}

	if end, ok := parseEndTime(form.EndTime); ok {
		if !end.After(s.now()) {
			return models.Auction{}, ErrEndTimeInPast
		}
		payload.EndTime = end.UTC().Format(time.RFC3339)
	}

	auction, err := s.api.CreateAuction(ctx, payload)
	if err != nil {
		return models.Auction{}, err
	}
	record(s.events, "auction.created", "info", fmt.Sprintf("Created auction %q", auction.Title), &auction.ID)
	return auction, nil
}

func (s *AuctionService) UpdateAuction(ctx context.Context, id string, update models.AuctionUpdate) (models.Auction, error) {
	auction, err := s.api.UpdateAuction(ctx, id, update)
	if err != nil {
		return models.Auction{}, err
	}
	record(s.events, "auction.updated", "info", "Updated auction "+id, &id)
	return auction, nil
}

func (s *AuctionService) DeleteAuction(ctx context.Context, id string) error {
	if err := s.api.DeleteAuction(ctx, id); err != nil {
		return err
	}
	record(s.events, "auction.deleted", "warn", "Deleted auction "+id, &id)
	return nil
}

func (s *AuctionService) ListWorkflowAuctions(ctx context.Context, filter models.WorkflowFilter) ([]models.Auction, error) {
	return s.api.ListWorkflowAuctions(ctx, filter)
}

func parseEndTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range endTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
