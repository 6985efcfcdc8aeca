package models

import "time"

// OrderStatus is the composite status of an order.
type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "pending_payment"
	OrderPaid           OrderStatus = "paid"
	OrderShipped        OrderStatus = "shipped"
	OrderDelivered      OrderStatus = "delivered"
	OrderCompleted      OrderStatus = "completed"
	OrderCancelled      OrderStatus = "cancelled"
)

// Order represents the sale created once per won auction.
type Order struct {
	ID              string      `json:"id"`
	AuctionID       string      `json:"auction_id"`
	BuyerID         string      `json:"buyer_id"`
	SellerID        string      `json:"seller_id"`
	WinningBidID    *string     `json:"winning_bid_id,omitempty"`
	TotalAmount     float64     `json:"total_amount"`
	PaymentStatus   string      `json:"payment_status"`
	ShippingAddress string      `json:"shipping_address"`
	ShippingStatus  string      `json:"shipping_status"`
	TrackingNumber  *string     `json:"tracking_number,omitempty"`
	TrackingURL     *string     `json:"tracking_url,omitempty"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	ShippedAt       *time.Time  `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time  `json:"delivered_at,omitempty"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`

	Auction *Auction `json:"auction,omitempty"`
	Buyer   *User    `json:"buyer,omitempty"`
	Seller  *User    `json:"seller,omitempty"`
}

// NewOrder is the body of POST /orders.
type NewOrder struct {
	AuctionID       string `json:"auction_id"`
	ShippingAddress string `json:"shipping_address"`
}

// OrderUpdate is the body of PUT /orders/:id.
type OrderUpdate struct {
	Status          *OrderStatus `json:"status,omitempty"`
	ShippingStatus  *string      `json:"shipping_status,omitempty"`
	ShippingAddress *string      `json:"shipping_address,omitempty"`
	TrackingNumber  *string      `json:"tracking_number,omitempty"`
	TrackingURL     *string      `json:"tracking_url,omitempty"`
}
