package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/services"
	"github.com/rs/zerolog/log"
)

// API is the part of the remote API that advances an auction's workflow.
type API interface {
	CloseAuction(ctx context.Context, id string) (models.Auction, error)
	UpdateWorkflow(ctx context.Context, id string, in models.WorkflowUpdate) (models.WorkflowInfo, error)
}

// Input carries the form fields an action may need.
type Input struct {
	ShippingAddress string
	TrackingNumber  string
	TrackingURL     string
	Reason          string
}

// Result describes a completed action. The caller refetches after it.
type Result struct {
	Action  Action
	From    models.WorkflowState
	To      models.WorkflowState
	Auction *models.Auction
	Order   *models.Order
	Dispute *models.Dispute
}

// Engine performs workflow actions, each as a single request so the order and the
// auction cannot be left disagreeing.
type Engine struct {
	api      API
	orders   services.OrderServiceProvider
	disputes services.DisputeServiceProvider
	events   services.EventServiceProvider
}

// NewEngine creates a new Engine.
func NewEngine(api API, orders services.OrderServiceProvider, disputes services.DisputeServiceProvider, events services.EventServiceProvider) *Engine {
	return &Engine{api: api, orders: orders, disputes: disputes, events: events}
}

// Perform runs action on auction. actor only picks the dispute role; the backend
// decides whether the caller may act at all.
func (e *Engine) Perform(ctx context.Context, auction models.Auction, order *models.Order, actor Actor, action Action, in Input) (Result, error) {
	from := auction.Workflow()
	t, err := Lookup(from, action, order != nil)
	if err != nil {
		return Result{}, err
	}

	result := Result{Action: action, From: from, To: t.To}
	switch action {
	case ActionCloseAuction:
		closed, err := e.api.CloseAuction(ctx, auction.ID)
		if err != nil {
			return Result{}, err
		}
		result.Auction = &closed

	case ActionSubmitShipping:
		created, err := e.orders.CreateOrder(ctx, auction.ID, in.ShippingAddress)
		if err != nil {
			return Result{}, err
		}
		result.Order = &created

	case ActionMarkShipped:
		if strings.TrimSpace(in.TrackingNumber) == "" {
			return Result{}, services.ErrTrackingNumberRequired
		}
		update := models.WorkflowUpdate{
			Action:         string(action),
			WorkflowState:  t.To,
			OrderID:        &order.ID,
			OrderStatus:    models.Ptr(models.OrderShipped),
			TrackingNumber: &in.TrackingNumber,
		}
		if in.TrackingURL != "" {
			update.TrackingURL = &in.TrackingURL
		}
		if err := e.updateWorkflow(ctx, auction.ID, update, &result); err != nil {
			return Result{}, err
		}

	case ActionConfirmReceipt:
		update := models.WorkflowUpdate{
			Action:        string(action),
			WorkflowState: t.To,
			OrderID:       &order.ID,
			OrderStatus:   models.Ptr(models.OrderCompleted),
		}
		if err := e.updateWorkflow(ctx, auction.ID, update, &result); err != nil {
			return Result{}, err
		}

	case ActionFileDispute:
		role := models.PartyBuyer
		if actor == ActorSeller {
			role = models.PartySeller
		}
		dispute := models.NewDispute{AuctionID: auction.ID, Role: role, Reason: in.Reason}
		if order != nil {
			dispute.OrderID = &order.ID
		}
		filed, err := e.disputes.FileDispute(ctx, dispute)
		if err != nil {
			return Result{}, err
		}
		result.Dispute = &filed
	}

	log.Info().Str("auction_id", auction.ID).Str("action", string(action)).Str("from", string(from)).Str("to", string(t.To)).Msg("Workflow action performed")
	if e.events != nil {
		msg := fmt.Sprintf("%s: %s -> %s", action, from, t.To)
		if err := e.events.CreateEvent("workflow."+string(action), "info", msg, &auction.ID); err != nil {
			log.Warn().Err(err).Msg("Failed to record workflow event")
		}
	}
	return result, nil
}

func (e *Engine) updateWorkflow(ctx context.Context, auctionID string, update models.WorkflowUpdate, result *Result) error {
	info, err := e.api.UpdateWorkflow(ctx, auctionID, update)
	if err != nil {
		return err
	}
	result.Order = info.Order
	return nil
}
