// Package workflow holds the post-bidding lifecycle of an auction:
// active -> pending_sale -> shipping -> complete.
package workflow

import (
	"errors"
	"fmt"

	"github.com/isdelr/auction-lab/internal/models"
)

// Action is a control offered by one of the workflow phases.
type Action string

const (
	ActionCloseAuction   Action = "close_auction"
	ActionSubmitShipping Action = "submit_shipping"
	ActionMarkShipped    Action = "mark_shipped"
	ActionConfirmReceipt Action = "confirm_receipt"
	ActionFileDispute    Action = "file_dispute"
)

// Actor is the viewer's relation to the auction.
type Actor string

const (
	ActorSeller Actor = "seller"
	ActorBuyer  Actor = "buyer"
	ActorViewer Actor = "viewer"
)

var (
	ErrUnknownAction       = errors.New("unknown workflow action")
	ErrActionNotAvailable  = errors.New("action is not available in the current phase")
	ErrOrderRequired       = errors.New("no order exists for this auction yet")
	ErrOrderAlreadyCreated = errors.New("an order already exists for this auction")
)

// orderRule says whether a transition needs the auction's order to exist.
type orderRule int

const (
	orderAny orderRule = iota
	orderMissing
	orderPresent
)

// Transition is one row of the workflow table.
type Transition struct {
	From   models.WorkflowState
	Action Action
	Actors []Actor
	Order  orderRule
	To     models.WorkflowState
}

var transitions = []Transition{
	{From: models.WorkflowActive, Action: ActionCloseAuction, Actors: []Actor{ActorSeller}, Order: orderAny, To: models.WorkflowPendingSale},
	{From: models.WorkflowPendingSale, Action: ActionSubmitShipping, Actors: []Actor{ActorBuyer}, Order: orderMissing, To: models.WorkflowPendingSale},
	{From: models.WorkflowPendingSale, Action: ActionMarkShipped, Actors: []Actor{ActorSeller}, Order: orderPresent, To: models.WorkflowShipping},
	{From: models.WorkflowShipping, Action: ActionConfirmReceipt, Actors: []Actor{ActorBuyer}, Order: orderPresent, To: models.WorkflowComplete},
	{From: models.WorkflowComplete, Action: ActionFileDispute, Actors: []Actor{ActorSeller, ActorBuyer}, Order: orderAny, To: models.WorkflowComplete},
}

// Transitions returns a copy of the workflow table.
func Transitions() []Transition {
	return append([]Transition(nil), transitions...)
}

// ParseAction validates an action name.
func ParseAction(name string) (Action, error) {
	for _, t := range transitions {
		if string(t.Action) == name {
			return t.Action, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// RoleOf derives the viewer's role. A nil user is a viewer.
func RoleOf(auction models.Auction, user *models.User, order *models.Order) Actor {
	if user == nil || user.ID == "" {
		return ActorViewer
	}
	if auction.CreatedBy == user.ID || (order != nil && order.SellerID == user.ID) {
		return ActorSeller
	}
	if winner, ok := models.StringValue(auction.WinnerID); ok && winner == user.ID {
		return ActorBuyer
	}
	if order != nil && order.BuyerID == user.ID {
		return ActorBuyer
	}
	return ActorViewer
}

// Allowed lists the actions the phase for state shows to actor.
func Allowed(state models.WorkflowState, actor Actor, hasOrder bool) []Action {
	var actions []Action
	for _, t := range transitions {
		if t.From == state && t.permits(actor) && t.orderOK(hasOrder) {
			actions = append(actions, t.Action)
		}
	}
	return actions
}

// Lookup finds the transition for action out of state, checking only that the
// phase offers it and that the order precondition holds. Who performs it is left
// to the backend.
func Lookup(state models.WorkflowState, action Action, hasOrder bool) (Transition, error) {
	known := false
	for _, t := range transitions {
		if t.Action != action {
			continue
		}
		known = true
		if t.From != state {
			continue
		}
		switch {
		case t.Order == orderPresent && !hasOrder:
			return Transition{}, ErrOrderRequired
		case t.Order == orderMissing && hasOrder:
			return Transition{}, ErrOrderAlreadyCreated
		}
		return t, nil
	}
	if !known {
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return Transition{}, fmt.Errorf("%w: %s from %s", ErrActionNotAvailable, action, state)
}

func (t Transition) permits(actor Actor) bool {
	for _, a := range t.Actors {
		if a == actor {
			return true
		}
	}
	return false
}

func (t Transition) orderOK(hasOrder bool) bool {
	switch t.Order {
	case orderMissing:
		return !hasOrder
	case orderPresent:
		return hasOrder
	}
	return true
}
