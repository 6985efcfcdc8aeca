package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/auction-lab/internal/services"
	"github.com/rs/zerolog/log"
)

// NotificationHandler flips notifications to read.
type NotificationHandler struct {
	service services.NotificationServiceProvider
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service services.NotificationServiceProvider) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.MarkRead(r.Context(), id); err != nil {
		log.Warn().Err(err).Str("notification_id", id).Msg("Failed to mark notification read")
		http.Error(w, err.Error(), failureStatus(err))
		return
	}
	http.Redirect(w, r, "/notifications", http.StatusSeeOther)
}
