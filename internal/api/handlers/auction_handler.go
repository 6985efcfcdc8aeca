package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/auction-lab/internal/services"
	"github.com/rs/zerolog/log"
)

const maxUploadMemory = 32 << 20

// AuctionHandler handles the auction forms: create, bid and image upload.
type AuctionHandler struct {
	auctions services.AuctionServiceProvider
	bids     services.BidServiceProvider
	images   services.ImageServiceProvider
	pages    *Pages
}

// NewAuctionHandler creates a new AuctionHandler.
func NewAuctionHandler(auctions services.AuctionServiceProvider, bids services.BidServiceProvider, images services.ImageServiceProvider, pages *Pages) *AuctionHandler {
	return &AuctionHandler{auctions: auctions, bids: bids, images: images, pages: pages}
}

// Create submits the create-auction form. Title and description go through as typed.
func (h *AuctionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.pages.requireLogin(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	form := services.AuctionForm{
		Title:         r.PostForm.Get("title"),
		Description:   r.PostForm.Get("description"),
		StartingPrice: r.PostForm.Get("starting_price"),
		EndTime:       r.PostForm.Get("end_time"),
	}
	auction, err := h.auctions.CreateAuction(r.Context(), form)
	if err != nil {
		h.pages.render(w, failureStatus(err), "auction_new.html", "Create auction", err.Error(), form)
		return
	}
	http.Redirect(w, r, "/auctions/"+auction.ID, http.StatusSeeOther)
}

// PlaceBid reads the current bid, then submits the typed amount once.
func (h *AuctionHandler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	auction, err := h.auctions.GetAuction(r.Context(), id)
	if err != nil {
		h.pages.auction(w, r, id, failureStatus(err), err.Error())
		return
	}
	if _, err := h.bids.PlaceBid(r.Context(), auction, r.PostForm.Get("amount")); err != nil {
		log.Warn().Err(err).Str("auction_id", id).Msg("Bid rejected")
		h.pages.auction(w, r, id, failureStatus(err), err.Error())
		return
	}
	http.Redirect(w, r, "/auctions/"+id, http.StatusSeeOther)
}

// Bids returns the bid history as JSON for the live page.
func (h *AuctionHandler) Bids(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	bids, err := h.bids.ListBids(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), failureStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bids)
}

// UploadImage forwards the posted file to object storage. The declared content type
// and size are passed on unchecked.
func (h *AuctionHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "Invalid upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	_, err = h.images.Upload(r.Context(), services.ImageUpload{
		AuctionID:   id,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
		Primary:     r.FormValue("primary") != "",
	})
	if err != nil {
		log.Error().Err(err).Str("auction_id", id).Msg("Image upload failed")
		h.pages.auction(w, r, id, failureStatus(err), err.Error())
		return
	}
	http.Redirect(w, r, "/auctions/"+id, http.StatusSeeOther)
}
