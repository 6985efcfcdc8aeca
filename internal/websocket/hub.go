package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active browser clients and broadcasts messages to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Messages for every client.
	Broadcast chan []byte

	// Messages for the clients watching one auction.
	targeted chan targetedMessage

	// Messages for a single client.
	direct chan directMessage

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of auction IDs to the set of clients watching it.
	subscriptions map[string]map[*Client]bool

	done chan struct{}
}

type directMessage struct {
	client  *Client
	message []byte
}

type targetedMessage struct {
	auctionID string
	message   []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		targeted:      make(chan targetedMessage),
		direct:        make(chan directMessage),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		done:          make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. It owns every map; other
// goroutines talk to it only through channels.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Str("client_id", client.ID).Int("total_clients", len(h.clients)).Msg("Client connected")
			if client.AuctionID != "" {
				h.addSubscription(client, client.AuctionID)
			}
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Info().Str("client_id", client.ID).Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				h.deliver(client, message)
			}
		case dm := <-h.direct:
			if h.clients[dm.client] {
				h.deliver(dm.client, dm.message)
			}
		case tm := <-h.targeted:
			for client := range h.subscriptions[tm.auctionID] {
				h.deliver(client, tm.message)
			}
		}
	}
}

// Stop ends Run and disconnects every client.
func (h *Hub) Stop() {
	close(h.done)
}

// Join registers client unless the hub has stopped.
func (h *Hub) Join(client *Client) {
	select {
	case h.Register <- client:
	case <-h.done:
	}
}

// Leave unregisters client unless the hub has stopped.
func (h *Hub) Leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// Publish sends a message to every client unless the hub has stopped.
func (h *Hub) Publish(message []byte) {
	select {
	case h.Broadcast <- message:
	case <-h.done:
	}
}

// BroadcastTo sends a message to all clients watching a specific auction ID.
func (h *Hub) BroadcastTo(auctionID string, message []byte) {
	select {
	case h.targeted <- targetedMessage{auctionID: auctionID, message: message}:
	case <-h.done:
	}
}

// Reply sends a message to one registered client unless the hub has stopped.
func (h *Hub) Reply(client *Client, message []byte) {
	select {
	case h.direct <- directMessage{client: client, message: message}:
	case <-h.done:
	}
}

// deliver drops clients whose send buffer is full.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
	h.removeSubscription(client)
}

func (h *Hub) addSubscription(client *Client, auctionID string) {
	if h.subscriptions[auctionID] == nil {
		h.subscriptions[auctionID] = make(map[*Client]bool)
	}
	h.subscriptions[auctionID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for auctionID, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, auctionID)
			}
		}
	}
}
