package workflow

import (
	"fmt"
	"time"

	"github.com/isdelr/auction-lab/internal/models"
)

// AutoCompleteWindow is the advisory period after shipping shown to users. Nothing
// enforces it.
const AutoCompleteWindow = 30 * 24 * time.Hour

// Phase is the presentational variant selected by an auction's workflow state.
type Phase struct {
	State       models.WorkflowState
	Title       string
	Description string
	Actor       Actor
	Actions     []Action
	Order       *models.Order
	Countdown   string
}

var phaseText = map[models.WorkflowState][2]string{
	models.WorkflowActive:      {"Active bidding", "The auction is open for bids."},
	models.WorkflowPendingSale: {"Pending sale", "Bidding has ended. Waiting for the buyer's address and the seller's shipment."},
	models.WorkflowShipping:    {"Shipped", "The item is on its way. The buyer confirms receipt to complete the sale."},
	models.WorkflowComplete:    {"Complete", "The sale is complete. Either party may file a dispute."},
}

// PhaseFor selects the phase for auction as seen by user.
func PhaseFor(auction models.Auction, user *models.User, order *models.Order, now time.Time) Phase {
	state := auction.Workflow()
	actor := RoleOf(auction, user, order)
	text := phaseText[state]

	phase := Phase{
		State:       state,
		Title:       text[0],
		Description: text[1],
		Actor:       actor,
		Actions:     Allowed(state, actor, order != nil),
		Order:       order,
	}
	if state == models.WorkflowShipping && order != nil {
		phase.Countdown = AutoCompleteText(order.ShippedAt, now)
	}
	return phase
}

// AutoCompleteRemaining returns the time left in the advisory window. ok is false
// when the order has not shipped.
func AutoCompleteRemaining(shippedAt *time.Time, now time.Time) (remaining time.Duration, ok bool) {
	shipped, ok := models.TimeValue(shippedAt)
	if !ok {
		return 0, false
	}
	remaining = shipped.Add(AutoCompleteWindow).Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// AutoCompleteText renders the countdown shown in the shipping phase.
func AutoCompleteText(shippedAt *time.Time, now time.Time) string {
	remaining, ok := AutoCompleteRemaining(shippedAt, now)
	if !ok {
		return ""
	}
	if remaining == 0 {
		return "The auto-complete window has passed."
	}
	days := int(remaining.Hours() / 24)
	if days < 1 {
		return "Auto-completes in less than a day."
	}
	if days == 1 {
		return "Auto-completes in 1 day."
	}
	return fmt.Sprintf("Auto-completes in %d days.", days)
}
