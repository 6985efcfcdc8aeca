package services

import (
	"context"
	"strings"

	"github.com/isdelr/auction-lab/internal/client"
	"github.com/isdelr/auction-lab/internal/models"
)

// OrderServiceProvider defines the interface for order services.
type OrderServiceProvider interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (models.Order, error)
	CreateOrder(ctx context.Context, auctionID, shippingAddress string) (models.Order, error)
	UpdateOrder(ctx context.Context, id string, update models.OrderUpdate) (models.Order, error)
	FindOrderForAuction(ctx context.Context, auctionID string) (*models.Order, error)
}

// OrderService reads and creates orders.
type OrderService struct {
	api    *client.Client
	events EventServiceProvider
}

// NewOrderService creates a new OrderService.
func NewOrderService(api *client.Client, events EventServiceProvider) *OrderService {
	return &OrderService{api: api, events: events}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.api.ListOrders(ctx)
}

// GetOrder fetches any order by id; nothing checks that it belongs to the caller.
func (s *OrderService) GetOrder(ctx context.Context, id string) (models.Order, error) {
	return s.api.GetOrder(ctx, id)
}

// CreateOrder requires a non-blank address and sends it exactly as typed.
func (s *OrderService) CreateOrder(ctx context.Context, auctionID, shippingAddress string) (models.Order, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return models.Order{}, ErrShippingAddressRequired
	}
	order, err := s.api.CreateOrder(ctx, models.NewOrder{AuctionID: auctionID, ShippingAddress: shippingAddress})
	if err != nil {
		return models.Order{}, err
	}
	record(s.events, "order.created", "info", "Submitted shipping address", &auctionID)
	return order, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, id string, update models.OrderUpdate) (models.Order, error) {
	return s.api.UpdateOrder(ctx, id, update)
}

// FindOrderForAuction returns the order tied to auctionID, or nil when none exists yet.
func (s *OrderService) FindOrderForAuction(ctx context.Context, auctionID string) (*models.Order, error) {
	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].AuctionID == auctionID {
			return &orders[i], nil
		}
	}
	return nil, nil
}
