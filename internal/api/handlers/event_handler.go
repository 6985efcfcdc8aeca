package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/services"
	"github.com/rs/zerolog/log"
)

// EventHandler serves the local activity log.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent returns the latest actions taken from this install, optionally
// narrowed to one auction with ?auction_id=.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	var events []models.Event
	if auctionID := r.URL.Query().Get("auction_id"); auctionID != "" {
		events, err = h.service.GetAuctionEvents(auctionID, limit)
	} else {
		events, err = h.service.GetRecentEvents(limit)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve events")
		http.Error(w, "Failed to retrieve events: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}
