package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/isdelr/auction-lab/internal/client"
	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/services"
	"github.com/stretchr/testify/require"
)

func auctionIn(state models.WorkflowState) models.Auction {
	return models.Auction{
		ID:            "a1",
		CreatedBy:     "seller-1",
		WinnerID:      models.Ptr("buyer-1"),
		WorkflowState: models.Ptr(state),
	}
}

func TestRoleOf(t *testing.T) {
	auction := auctionIn(models.WorkflowPendingSale)

	require.Equal(t, ActorViewer, RoleOf(auction, nil, nil))
	require.Equal(t, ActorSeller, RoleOf(auction, &models.User{ID: "seller-1"}, nil))
	require.Equal(t, ActorBuyer, RoleOf(auction, &models.User{ID: "buyer-1"}, nil))
	require.Equal(t, ActorViewer, RoleOf(auction, &models.User{ID: "someone"}, nil))

	noWinner := auction
	noWinner.WinnerID = nil
	require.Equal(t, ActorBuyer, RoleOf(noWinner, &models.User{ID: "buyer-2"}, &models.Order{BuyerID: "buyer-2"}))
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		name     string
		state    models.WorkflowState
		actor    Actor
		hasOrder bool
		want     []Action
	}{
		{name: "seller_active", state: models.WorkflowActive, actor: ActorSeller, want: []Action{ActionCloseAuction}},
		{name: "buyer_active", state: models.WorkflowActive, actor: ActorBuyer, want: nil},
		{name: "buyer_pending_no_order", state: models.WorkflowPendingSale, actor: ActorBuyer, want: []Action{ActionSubmitShipping}},
		{name: "buyer_pending_with_order", state: models.WorkflowPendingSale, actor: ActorBuyer, hasOrder: true, want: nil},
		{name: "seller_pending_no_order", state: models.WorkflowPendingSale, actor: ActorSeller, want: nil},
		{name: "seller_pending_with_order", state: models.WorkflowPendingSale, actor: ActorSeller, hasOrder: true, want: []Action{ActionMarkShipped}},
		{name: "buyer_shipping", state: models.WorkflowShipping, actor: ActorBuyer, hasOrder: true, want: []Action{ActionConfirmReceipt}},
		{name: "seller_complete", state: models.WorkflowComplete, actor: ActorSeller, hasOrder: true, want: []Action{ActionFileDispute}},
		{name: "buyer_complete", state: models.WorkflowComplete, actor: ActorBuyer, hasOrder: true, want: []Action{ActionFileDispute}},
		{name: "viewer_complete", state: models.WorkflowComplete, actor: ActorViewer, hasOrder: true, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Allowed(tt.state, tt.actor, tt.hasOrder))
		})
	}
}

func TestLookup(t *testing.T) {
	_, err := Lookup(models.WorkflowActive, "explode", false)
	require.ErrorIs(t, err, ErrUnknownAction)

	_, err = Lookup(models.WorkflowActive, ActionConfirmReceipt, true)
	require.ErrorIs(t, err, ErrActionNotAvailable)

	_, err = Lookup(models.WorkflowPendingSale, ActionMarkShipped, false)
	require.ErrorIs(t, err, ErrOrderRequired)

	_, err = Lookup(models.WorkflowPendingSale, ActionSubmitShipping, true)
	require.ErrorIs(t, err, ErrOrderAlreadyCreated)

	tr, err := Lookup(models.WorkflowShipping, ActionConfirmReceipt, true)
	require.NoError(t, err)
	require.Equal(t, models.WorkflowComplete, tr.To)

	tr, err = Lookup(models.WorkflowComplete, ActionFileDispute, false)
	require.NoError(t, err)
	require.Equal(t, models.WorkflowComplete, tr.To)
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("mark_shipped")
	require.NoError(t, err)
	require.Equal(t, ActionMarkShipped, a)

	_, err = ParseAction("refund")
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestAutoComplete(t *testing.T) {
	shipped := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	_, ok := AutoCompleteRemaining(nil, shipped)
	require.False(t, ok)
	require.Empty(t, AutoCompleteText(nil, shipped))

	remaining, ok := AutoCompleteRemaining(&shipped, shipped.Add(10*24*time.Hour))
	require.True(t, ok)
	require.Equal(t, 20*24*time.Hour, remaining)
	require.Equal(t, "Auto-completes in 20 days.", AutoCompleteText(&shipped, shipped.Add(10*24*time.Hour)))
	require.Equal(t, "Auto-completes in 1 day.", AutoCompleteText(&shipped, shipped.Add(29*24*time.Hour)))
	require.Equal(t, "Auto-completes in less than a day.", AutoCompleteText(&shipped, shipped.Add(29*24*time.Hour+time.Hour)))

	remaining, ok = AutoCompleteRemaining(&shipped, shipped.Add(45*24*time.Hour))
	require.True(t, ok)
	require.Zero(t, remaining)
	require.Equal(t, "The auto-complete window has passed.", AutoCompleteText(&shipped, shipped.Add(45*24*time.Hour)))
}

func TestPhaseFor(t *testing.T) {
	shipped := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	order := &models.Order{ID: "o1", BuyerID: "buyer-1", SellerID: "seller-1", ShippedAt: &shipped}

	phase := PhaseFor(auctionIn(models.WorkflowShipping), &models.User{ID: "buyer-1"}, order, shipped.Add(24*time.Hour))
	require.Equal(t, "Shipped", phase.Title)
	require.Equal(t, ActorBuyer, phase.Actor)
	require.Equal(t, []Action{ActionConfirmReceipt}, phase.Actions)
	require.Equal(t, "Auto-completes in 29 days.", phase.Countdown)

	missing := models.Auction{ID: "a2"}
	phase = PhaseFor(missing, nil, nil, shipped)
	require.Equal(t, models.WorkflowActive, phase.State)
	require.Empty(t, phase.Actions)
}

type apiCall struct {
	Method string
	Path   string
	Body   map[string]any
}

type fakeBackend struct {
	mu     sync.Mutex
	calls  []apiCall
	status int
	body   string
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	f.mu.Lock()
	f.calls = append(f.calls, apiCall{Method: r.Method, Path: r.URL.Path, Body: body})
	f.mu.Unlock()
	w.WriteHeader(f.status)
	io.WriteString(w, f.body)
}

func newEngine(t *testing.T, status int, body string) (*Engine, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{status: status, body: body}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	api := client.New(srv.URL, nil)
	engine := NewEngine(api, services.NewOrderService(api, services.NopEvents{}), services.NewDisputeService(api, services.NopEvents{}), services.NopEvents{})
	return engine, backend
}

func TestEngine_SingleRequestPerTransition(t *testing.T) {
	order := &models.Order{ID: "o1", BuyerID: "buyer-1", SellerID: "seller-1"}

	tests := []struct {
		name     string
		state    models.WorkflowState
		order    *models.Order
		actor    Actor
		action   Action
		input    Input
		wantCall apiCall
	}{
		{
			name:     "close",
			state:    models.WorkflowActive,
			actor:    ActorSeller,
			action:   ActionCloseAuction,
			wantCall: apiCall{Method: http.MethodPost, Path: "/auctions/a1/close"},
		},
		{
			name:   "submit_shipping",
			state:  models.WorkflowPendingSale,
			actor:  ActorBuyer,
			action: ActionSubmitShipping,
			input:  Input{ShippingAddress: `<img src=x onerror="alert(1)">`},
			wantCall: apiCall{Method: http.MethodPost, Path: "/orders", Body: map[string]any{
				"auction_id": "a1", "shipping_address": `<img src=x onerror="alert(1)">`,
			}},
		},
		{
			name:   "mark_shipped",
			state:  models.WorkflowPendingSale,
			order:  order,
			actor:  ActorSeller,
			action: ActionMarkShipped,
			input:  Input{TrackingNumber: "1Z999", TrackingURL: "javascript:alert(1)"},
			wantCall: apiCall{Method: http.MethodPut, Path: "/auctions/a1/workflow", Body: map[string]any{
				"action": "mark_shipped", "workflow_state": "shipping", "order_id": "o1",
				"order_status": "shipped", "tracking_number": "1Z999", "tracking_url": "javascript:alert(1)",
			}},
		},
		{
			name:   "confirm_receipt",
			state:  models.WorkflowShipping,
			order:  order,
			actor:  ActorBuyer,
			action: ActionConfirmReceipt,
			wantCall: apiCall{Method: http.MethodPut, Path: "/auctions/a1/workflow", Body: map[string]any{
				"action": "confirm_receipt", "workflow_state": "complete", "order_id": "o1", "order_status": "completed",
			}},
		},
		{
			name:   "file_dispute_as_seller",
			state:  models.WorkflowComplete,
			order:  order,
			actor:  ActorSeller,
			action: ActionFileDispute,
			input:  Input{Reason: "never paid"},
			wantCall: apiCall{Method: http.MethodPost, Path: "/disputes", Body: map[string]any{
				"auction_id": "a1", "order_id": "o1", "filed_by_role": "seller", "reason": "never paid",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, backend := newEngine(t, http.StatusOK, `{}`)

			result, err := engine.Perform(context.Background(), auctionIn(tt.state), tt.order, tt.actor, tt.action, tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.state, result.From)

			require.Len(t, backend.calls, 1)
			require.Equal(t, tt.wantCall.Method, backend.calls[0].Method)
			require.Equal(t, tt.wantCall.Path, backend.calls[0].Path)
			if tt.wantCall.Body != nil {
				require.Equal(t, tt.wantCall.Body, backend.calls[0].Body)
			}
		})
	}
}

func TestEngine_FailuresSendNothingOrSurfaceServerMessage(t *testing.T) {
	order := &models.Order{ID: "o1"}

	engine, backend := newEngine(t, http.StatusOK, `{}`)
	_, err := engine.Perform(context.Background(), auctionIn(models.WorkflowPendingSale), order, ActorSeller, ActionMarkShipped, Input{})
	require.ErrorIs(t, err, services.ErrTrackingNumberRequired)
	_, err = engine.Perform(context.Background(), auctionIn(models.WorkflowPendingSale), nil, ActorBuyer, ActionSubmitShipping, Input{ShippingAddress: ""})
	require.ErrorIs(t, err, services.ErrShippingAddressRequired)
	_, err = engine.Perform(context.Background(), auctionIn(models.WorkflowShipping), order, ActorSeller, ActionCloseAuction, Input{})
	require.ErrorIs(t, err, ErrActionNotAvailable)
	require.Empty(t, backend.calls)

	engine, _ = newEngine(t, http.StatusConflict, `{"message":"order o1 is not in paid state"}`)
	_, err = engine.Perform(context.Background(), auctionIn(models.WorkflowShipping), order, ActorBuyer, ActionConfirmReceipt, Input{})
	require.EqualError(t, err, "order o1 is not in paid state")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
}
