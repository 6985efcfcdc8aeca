package services

import (
	"context"
	"strings"

	"github.com/isdelr/auction-lab/internal/client"
	"github.com/isdelr/auction-lab/internal/models"
)

// DisputeServiceProvider defines the interface for dispute services.
type DisputeServiceProvider interface {
	ListDisputes(ctx context.Context, auctionID string) ([]models.Dispute, error)
	FileDispute(ctx context.Context, in models.NewDispute) (models.Dispute, error)
}

// DisputeService files and lists disputes.
type DisputeService struct {
	api    *client.Client
	events EventServiceProvider
}

// NewDisputeService creates a new DisputeService.
func NewDisputeService(api *client.Client, events EventServiceProvider) *DisputeService {
	return &DisputeService{api: api, events: events}
}

func (s *DisputeService) ListDisputes(ctx context.Context, auctionID string) ([]models.Dispute, error) {
	return s.api.ListDisputes(ctx, auctionID)
}

// FileDispute sends the reason as typed once it is non-blank.
func (s *DisputeService) FileDispute(ctx context.Context, in models.NewDispute) (models.Dispute, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return models.Dispute{}, ErrDisputeReasonRequired
	}
	dispute, err := s.api.CreateDispute(ctx, in)
	if err != nil {
		return models.Dispute{}, err
	}
	record(s.events, "dispute.filed", "warn", "Filed dispute as "+string(in.Role), &in.AuctionID)
	return dispute, nil
}
