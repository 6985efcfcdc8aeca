package views

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/isdelr/auction-lab/internal/client"
	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/services"
	"github.com/isdelr/auction-lab/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xssDescription = `<img src=x onerror="alert(1)">Desc`

type route struct {
	status int
	body   string
}

type fakeSession struct{ user *models.User }

func (f fakeSession) AuthUser() *models.User { return f.user }

func newLoader(t *testing.T, routes map[string]route, user *models.User) *Loader {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		rt, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":"not found"}`)
			return
		}
		if rt.status != 0 {
			w.WriteHeader(rt.status)
		}
		io.WriteString(w, rt.body)
	}))
	t.Cleanup(srv.Close)

	api := client.New(srv.URL, nil)
	events := services.NopEvents{}
	return NewLoader(Services{
		Auctions:      services.NewAuctionService(api, events),
		Bids:          services.NewBidService(api, events),
		Orders:        services.NewOrderService(api, events),
		Users:         services.NewUserService(api, events),
		Disputes:      services.NewDisputeService(api, events),
		Notifications: services.NewNotificationService(api),
		Images:        services.NewImageService(api, events),
		Events:        events,
	}, fakeSession{user: user})
}

func TestAuctionList_States(t *testing.T) {
	tests := []struct {
		name   string
		route  route
		status Status
		err    string
	}{
		{"populated", route{body: `[{"id":"a1","title":"Lamp"}]`}, StatusPopulated, ""},
		{"enveloped", route{body: `{"auctions":[{"id":"a1"}]}`}, StatusPopulated, ""},
		{"empty", route{body: `[]`}, StatusEmpty, ""},
		{
			"server message shown verbatim",
			route{status: 500, body: `{"message":"SQLITE_ERROR: near \"'\": syntax error\n    at Database.all (/app/db.js:42)"}`},
			StatusError,
			"SQLITE_ERROR: near \"'\": syntax error\n    at Database.all (/app/db.js:42)",
		},
		{"status fallback", route{status: 502, body: ``}, StatusError, "HTTP error! status: 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLoader(t, map[string]route{"GET /auctions": tt.route}, nil)
			state := l.AuctionList(context.Background())
			assert.Equal(t, tt.status, state.Status)
			assert.Equal(t, tt.err, state.Err)
		})
	}
}

func TestAuctionDetail_SellerWithOrder(t *testing.T) {
	seller := &models.User{ID: "u1", Name: "Sam"}
	l := newLoader(t, map[string]route{
		"GET /auctions/a1":      {body: `{"id":"a1","title":"Lamp","description":"Desc","created_by":"u1","status":"ended","workflow_state":"pending_sale"}`},
		"GET /auctions/a1/bids": {body: `[{"id":"b1","amount":10,"bidder_id":"u2"},{"id":"b2","amount":30,"bidder_id":"u3"}]`},
		"GET /images":           {body: `[]`},
		"GET /orders":           {body: `[{"id":"o9","auction_id":"other"},{"id":"o1","auction_id":"a1","buyer_id":"u2","seller_id":"u1"}]`},
	}, seller)

	state := l.AuctionDetail(context.Background(), "a1")
	require.Equal(t, StatusPopulated, state.Status, state.Err)

	page := state.Data
	assert.Equal(t, workflow.ActorSeller, page.Phase.Actor)
	assert.Equal(t, []workflow.Action{workflow.ActionMarkShipped}, page.Phase.Actions)
	require.NotNil(t, page.Phase.Order)
	assert.Equal(t, "o1", page.Phase.Order.ID)
	require.Equal(t, StatusPopulated, page.Bids.Status)
	assert.Equal(t, 30.0, page.Bids.Data[0].Amount)
}

func TestAuctionDetail_BidErrorDoesNotFailPage(t *testing.T) {
	l := newLoader(t, map[string]route{
		"GET /auctions/a1":      {body: `{"id":"a1","title":"Lamp"}`},
		"GET /auctions/a1/bids": {status: 500, body: `{"error":"bids table missing"}`},
		"GET /images":           {body: `[]`},
	}, nil)

	state := l.AuctionDetail(context.Background(), "a1")
	require.Equal(t, StatusPopulated, state.Status)
	assert.Equal(t, StatusError, state.Data.Bids.Status)
	assert.Equal(t, "bids table missing", state.Data.Bids.Err)
	assert.Equal(t, models.WorkflowActive, state.Data.Phase.State)
	assert.Equal(t, workflow.ActorViewer, state.Data.Phase.Actor)
}

func TestAuctionDetail_IDForwardedVerbatim(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"bad id"}`)
	}))
	defer srv.Close()

	api := client.New(srv.URL, nil)
	l := NewLoader(Services{Auctions: services.NewAuctionService(api, services.NopEvents{})}, fakeSession{})
	state := l.AuctionDetail(context.Background(), "1?admin=true'--")
	assert.Equal(t, StatusError, state.Status)
	assert.Equal(t, "bad id", state.Err)
	assert.Equal(t, "admin=true'--", got)
}

func TestProfile_NeedsUser(t *testing.T) {
	l := newLoader(t, map[string]route{
		"GET /users/u1": {body: `{"id":"u1","name":"Sam","password_hash":"$2b$10$abc"}`},
	}, nil)

	state := l.Profile(context.Background(), "")
	assert.Equal(t, StatusError, state.Status)
	assert.Equal(t, ErrNotLoggedIn.Error(), state.Err)

	state = l.Profile(context.Background(), "u1")
	require.Equal(t, StatusPopulated, state.Status)
	assert.Equal(t, "$2b$10$abc", *state.Data.PasswordHash)
}

func TestDashboard(t *testing.T) {
	l := newLoader(t, map[string]route{
		"GET /auctions/workflow": {body: `[{"id":"a1","title":"Lamp","workflow_state":"shipping"}]`},
		"GET /notifications":     {body: `[{"id":"n1","read":false},{"id":"n2","read":true},{"id":"n3"}]`},
	}, &models.User{ID: "u1", Name: "Sam"})

	state := l.Dashboard(context.Background())
	require.Equal(t, StatusPopulated, state.Status)
	assert.Equal(t, 2, state.Data.Unread)
	assert.Len(t, state.Data.Selling.Data, 1)
	assert.Len(t, state.Data.Buying.Data, 1)
}

func TestRender_KeepsMarkupInFreeText(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	user := &models.User{ID: "u2", Name: "Bea"}
	page := AuctionPage{
		Auction: models.Auction{ID: "a1", Title: "Lamp", Description: xssDescription, EndTime: time.Now().Add(time.Hour), Status: models.AuctionActive},
		Bids: State[[]models.Bid]{Status: StatusPopulated, Data: []models.Bid{
			{ID: "b1", Amount: 12, Bidder: &models.UserSummary{Name: "<b>Eve</b>"}},
		}},
		Phase: workflow.PhaseFor(models.Auction{}, user, nil, time.Now()),
	}

	var buf bytes.Buffer
	err = r.Render(&buf, "auction.html", Page{Title: "Lamp", User: user, Content: State[AuctionPage]{Status: StatusPopulated, Data: page}})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<img")
	assert.Contains(t, html, "onerror")
	assert.Contains(t, html, xssDescription)
	assert.Contains(t, html, "<b>Eve</b>")
	assert.Contains(t, html, `action="/auctions/a1/bids"`)
}

func TestRender_OrderAddressAndDisputeReason(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	order := models.Order{ID: "o1", AuctionID: "a1", ShippingAddress: xssDescription}
	require.NoError(t, r.Render(&buf, "order.html", Page{Content: State[models.Order]{Status: StatusPopulated, Data: order}}))
	assert.Contains(t, buf.String(), xssDescription)

	buf.Reset()
	page := AuctionPage{
		Auction:  models.Auction{ID: "a1", WorkflowState: models.Ptr(models.WorkflowComplete)},
		Disputes: []models.Dispute{{ID: "d1", Reason: xssDescription, FiledByRole: models.PartyBuyer}},
		Phase:    workflow.PhaseFor(models.Auction{WorkflowState: models.Ptr(models.WorkflowComplete)}, nil, nil, time.Now()),
	}
	require.NoError(t, r.Render(&buf, "auction.html", Page{Content: State[AuctionPage]{Status: StatusPopulated, Data: page}}))
	assert.Contains(t, buf.String(), xssDescription)
}

func TestRender_ErrorState(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	state := Failed[[]models.Auction](&client.APIError{StatusCode: 500, Message: "boom at line 3"})
	require.NoError(t, r.Render(&buf, "auctions.html", Page{Content: state}))
	assert.Contains(t, buf.String(), "boom at line 3")

	assert.Error(t, r.Render(&buf, "missing.html", Page{}))
}

func TestRender_ProfileShowsName(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	user := models.User{ID: "u1", Name: xssDescription, Address: models.Ptr(xssDescription)}
	require.NoError(t, r.Render(&buf, "profile.html", Page{Content: State[models.User]{Status: StatusPopulated, Data: user}}))
	assert.Contains(t, buf.String(), "<h1>"+xssDescription+"</h1>")
}
