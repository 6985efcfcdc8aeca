package views

import (
	"context"
	"errors"
	"time"

	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/services"
	"github.com/isdelr/auction-lab/internal/workflow"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrNotLoggedIn is shown by views that need a stored user.
var ErrNotLoggedIn = errors.New("you must be logged in to view this page")

const recentEventLimit = 10

// Session exposes the stored user to the views.
type Session interface {
	AuthUser() *models.User
}

// Services groups the data sources the views read from.
type Services struct {
	Auctions      services.AuctionServiceProvider
	Bids          services.BidServiceProvider
	Orders        services.OrderServiceProvider
	Users         services.UserServiceProvider
	Disputes      services.DisputeServiceProvider
	Notifications services.NotificationServiceProvider
	Images        services.ImageServiceProvider
	Events        services.EventServiceProvider
}

// Loader issues the reads behind every page.
type Loader struct {
	svc     Services
	session Session
	now     func() time.Time
}

// NewLoader creates a new Loader.
func NewLoader(svc Services, session Session) *Loader {
	return &Loader{svc: svc, session: session, now: time.Now}
}

// AuctionPage is everything the auction detail page shows.
type AuctionPage struct {
	Auction  models.Auction
	Bids     State[[]models.Bid]
	Images   []models.Image
	Disputes []models.Dispute
	Phase    workflow.Phase
	User     *models.User
	Ended    bool
}

// DashboardPage lists the current user's sales and purchases.
type DashboardPage struct {
	User    models.User
	Selling State[[]models.Auction]
	Buying  State[[]models.Auction]
	Unread  int
	Events  []models.Event
}

func (l *Loader) AuctionList(ctx context.Context) State[[]models.Auction] {
	auctions, err := l.svc.Auctions.ListAuctions(ctx)
	return settleList(auctions, err)
}

// AuctionDetail loads an auction with its bids and workflow phase. Only the auction
// read decides the page state; the secondary reads degrade on their own.
func (l *Loader) AuctionDetail(ctx context.Context, id string) State[AuctionPage] {
	auction, err := l.svc.Auctions.GetAuction(ctx, id)
	if err != nil {
		return Failed[AuctionPage](err)
	}

	user := l.session.AuthUser()
	page := AuctionPage{
		Auction: auction,
		Bids:    l.BidHistory(ctx, id),
		Images:  auction.Images,
		User:    user,
		Ended:   auction.HasEnded(l.now()),
	}

	if len(page.Images) == 0 && l.svc.Images != nil {
		if images, err := l.svc.Images.ListImages(ctx, id); err == nil {
			page.Images = images
		} else {
			log.Debug().Err(err).Str("auction_id", id).Msg("Could not load auction images")
		}
	}

	var order *models.Order
	if auction.Workflow() != models.WorkflowActive && user != nil {
		order, err = l.svc.Orders.FindOrderForAuction(ctx, id)
		if err != nil {
			log.Debug().Err(err).Str("auction_id", id).Msg("Could not load order for auction")
		}
	}
	page.Phase = workflow.PhaseFor(auction, user, order, l.now())

	if auction.Workflow() == models.WorkflowComplete {
		if disputes, err := l.svc.Disputes.ListDisputes(ctx, id); err == nil {
			page.Disputes = disputes
		}
	}
	return State[AuctionPage]{Status: StatusPopulated, Data: page}
}

// BidHistory returns bids sorted for display.
func (l *Loader) BidHistory(ctx context.Context, auctionID string) State[[]models.Bid] {
	bids, err := l.svc.Bids.ListBids(ctx, auctionID)
	return settleList(bids, err)
}

func (l *Loader) OrderList(ctx context.Context) State[[]models.Order] {
	orders, err := l.svc.Orders.ListOrders(ctx)
	return settleList(orders, err)
}

func (l *Loader) OrderDetail(ctx context.Context, id string) State[models.Order] {
	order, err := l.svc.Orders.GetOrder(ctx, id)
	return settle(order, err, false)
}

// Profile loads the user with the given id, or the stored user when id is empty.
func (l *Loader) Profile(ctx context.Context, id string) State[models.User] {
	if id == "" {
		user := l.session.AuthUser()
		if user == nil {
			return Failed[models.User](ErrNotLoggedIn)
		}
		id = user.ID
	}
	user, err := l.svc.Users.GetUser(ctx, id)
	return settle(user, err, false)
}

// Dashboard loads the seller and buyer workflow lists for the stored user.
func (l *Loader) Dashboard(ctx context.Context) State[DashboardPage] {
	user := l.session.AuthUser()
	if user == nil {
		return Failed[DashboardPage](ErrNotLoggedIn)
	}

	page := DashboardPage{User: *user}

	// The three reads are independent; each degrades on its own.
	var g errgroup.Group
	g.Go(func() error {
		selling, err := l.svc.Auctions.ListWorkflowAuctions(ctx, models.WorkflowFilter{Role: string(models.PartySeller)})
		page.Selling = settleList(selling, err)
		return nil
	})
	g.Go(func() error {
		buying, err := l.svc.Auctions.ListWorkflowAuctions(ctx, models.WorkflowFilter{Role: string(models.PartyBuyer)})
		page.Buying = settleList(buying, err)
		return nil
	})
	g.Go(func() error {
		if unread, err := l.svc.Notifications.UnreadCount(ctx); err == nil {
			page.Unread = unread
		}
		return nil
	})
	g.Wait()

	if events, err := l.svc.Events.GetRecentEvents(recentEventLimit); err == nil {
		page.Events = events
	} else {
		log.Warn().Err(err).Msg("Could not read activity log")
	}

	if page.Selling.IsError() && page.Buying.IsError() {
		return State[DashboardPage]{Status: StatusError, Err: page.Selling.Err, Code: page.Selling.Code, Data: page}
	}
	return State[DashboardPage]{Status: StatusPopulated, Data: page}
}

func (l *Loader) Notifications(ctx context.Context) State[[]models.Notification] {
	notifications, err := l.svc.Notifications.ListNotifications(ctx)
	return settleList(notifications, err)
}
