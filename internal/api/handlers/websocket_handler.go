package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	ws "github.com/isdelr/auction-lab/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades browser connections and ties them to the hub and,
// for auction pages, to the upstream bid feed.
type WebSocketHandler struct {
	hub   *ws.Hub
	relay *ws.Relay
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub, relay *ws.Relay) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, relay: relay}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Serve handles both /ws (notifications only) and /ws/auctions/{id}.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	auctionID := chi.URLParam(r, "id")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, auctionID)
	h.hub.Join(client)

	acquired := false
	if auctionID != "" {
		if err := h.relay.Acquire(auctionID); err != nil {
			log.Error().Err(err).Str("auction_id", auctionID).Msg("Failed to open bid feed")
			h.hub.Reply(client, ws.NewErrorMessage(err.Error()))
		} else {
			acquired = true
			if latest := h.relay.Latest(auctionID); latest != nil {
				h.hub.Reply(client, ws.NewBidMessage(auctionID, latest.Raw))
			}
		}
	}

	go client.WritePump()

	// Cleanup on disconnect. Leave closes Send, which stops WritePump.
	go func() {
		client.ReadPump(h.handleIncomingWSMessage)
		// Only a successful Acquire holds a reference on the feed.
		if acquired {
			h.relay.Release(auctionID)
		}
		h.hub.Leave(client)
	}()
}

// handleIncomingWSMessage forwards browser frames for the client's auction upstream.
func (h *WebSocketHandler) handleIncomingWSMessage(client *ws.Client, message []byte) {
	var msg struct {
		Action  string          `json:"action"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Error().Err(err).Bytes("message", message).Msg("Error decoding websocket message")
		return
	}

	switch msg.Action {
	case "send":
		if client.AuctionID == "" {
			h.hub.Reply(client, ws.NewErrorMessage("Not watching an auction"))
			return
		}
		if err := h.relay.Send(client.AuctionID, msg.Payload); err != nil {
			h.hub.Reply(client, ws.NewErrorMessage(err.Error()))
		}
	case "ping":
		h.hub.Reply(client, ws.Message{Action: "pong"}.Encode())
	default:
		log.Warn().Str("action", msg.Action).Msg("Unknown websocket action received")
		h.hub.Reply(client, ws.NewErrorMessage("Unknown action: "+msg.Action))
	}
}
