package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/services"
	"github.com/isdelr/auction-lab/internal/workflow"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -destination=mock_performer_test.go -package=handlers . Performer

// Performer runs a workflow action.
type Performer interface {
	Perform(ctx context.Context, auction models.Auction, order *models.Order, actor workflow.Actor, action workflow.Action, in workflow.Input) (workflow.Result, error)
}

// WorkflowHandler handles the buttons of the post-auction workflow.
type WorkflowHandler struct {
	auctions services.AuctionServiceProvider
	orders   services.OrderServiceProvider
	engine   Performer
	pages    *Pages
}

// NewWorkflowHandler creates a new WorkflowHandler.
func NewWorkflowHandler(auctions services.AuctionServiceProvider, orders services.OrderServiceProvider, engine Performer, pages *Pages) *WorkflowHandler {
	return &WorkflowHandler{auctions: auctions, orders: orders, engine: engine, pages: pages}
}

// Perform runs the action named in the URL against the freshly read auction, then
// sends the browser back to the auction page to refetch.
func (h *WorkflowHandler) Perform(w http.ResponseWriter, r *http.Request) {
	if !h.pages.requireLogin(w, r) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	action, err := workflow.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		h.pages.auction(w, r, id, http.StatusNotFound, err.Error())
		return
	}

	auction, err := h.auctions.GetAuction(r.Context(), id)
	if err != nil {
		h.pages.auction(w, r, id, failureStatus(err), err.Error())
		return
	}

	var order *models.Order
	if auction.Workflow() != models.WorkflowActive {
		order, err = h.orders.FindOrderForAuction(r.Context(), id)
		if err != nil {
			h.pages.auction(w, r, id, failureStatus(err), err.Error())
			return
		}
	}

	actor := workflow.RoleOf(auction, h.pages.session.AuthUser(), order)
	in := workflow.Input{
		ShippingAddress: r.PostForm.Get("shipping_address"),
		TrackingNumber:  r.PostForm.Get("tracking_number"),
		TrackingURL:     r.PostForm.Get("tracking_url"),
		Reason:          r.PostForm.Get("reason"),
	}
	if _, err := h.engine.Perform(r.Context(), auction, order, actor, action, in); err != nil {
		log.Warn().Err(err).Str("auction_id", id).Str("action", string(action)).Msg("Workflow action failed")
		h.pages.auction(w, r, id, workflowStatus(err), err.Error())
		return
	}
	http.Redirect(w, r, "/auctions/"+id, http.StatusSeeOther)
}

func workflowStatus(err error) int {
	switch {
	case errors.Is(err, workflow.ErrActionNotAvailable),
		errors.Is(err, workflow.ErrOrderRequired),
		errors.Is(err, workflow.ErrOrderAlreadyCreated):
		return http.StatusConflict
	}
	return failureStatus(err)
}
