package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/auction-lab/internal/services"
)

// PageHandler serves the read-only pages.
type PageHandler struct {
	pages *Pages
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(pages *Pages) *PageHandler {
	return &PageHandler{pages: pages}
}

// Auctions lists every auction.
func (h *PageHandler) Auctions(w http.ResponseWriter, r *http.Request) {
	state := h.pages.loader.AuctionList(r.Context())
	h.pages.render(w, statusOf(state), "auctions.html", "Auctions", "", state)
}

// Auction shows one auction. The id is used exactly as it appears in the URL.
func (h *PageHandler) Auction(w http.ResponseWriter, r *http.Request) {
	h.pages.auction(w, r, chi.URLParam(r, "id"), http.StatusOK, "")
}

// NewAuction shows the empty create form.
func (h *PageHandler) NewAuction(w http.ResponseWriter, r *http.Request) {
	if !h.pages.requireLogin(w, r) {
		return
	}
	h.pages.render(w, http.StatusOK, "auction_new.html", "Create auction", "", services.AuctionForm{})
}

func (h *PageHandler) Orders(w http.ResponseWriter, r *http.Request) {
	state := h.pages.loader.OrderList(r.Context())
	h.pages.render(w, statusOf(state), "orders.html", "Orders", "", state)
}

func (h *PageHandler) Order(w http.ResponseWriter, r *http.Request) {
	state := h.pages.loader.OrderDetail(r.Context(), chi.URLParam(r, "id"))
	h.pages.render(w, statusOf(state), "order.html", "Order", "", state)
}

// Profile shows the user named in the URL, or the stored user on /profile.
func (h *PageHandler) Profile(w http.ResponseWriter, r *http.Request) {
	state := h.pages.loader.Profile(r.Context(), chi.URLParam(r, "id"))
	h.pages.render(w, statusOf(state), "profile.html", "Profile", "", state)
}

func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !h.pages.requireLogin(w, r) {
		return
	}
	state := h.pages.loader.Dashboard(r.Context())
	h.pages.render(w, statusOf(state), "dashboard.html", "Dashboard", "", state)
}

func (h *PageHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	state := h.pages.loader.Notifications(r.Context())
	h.pages.render(w, statusOf(state), "notifications.html", "Notifications", "", state)
}
