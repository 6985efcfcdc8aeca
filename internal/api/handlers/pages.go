package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/isdelr/auction-lab/internal/client"
	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/services"
	"github.com/isdelr/auction-lab/internal/views"
	"github.com/rs/zerolog/log"
)

// Renderer executes a named page template.
type Renderer interface {
	Render(w io.Writer, name string, page views.Page) error
}

// Session exposes the stored login to the handlers.
type Session interface {
	IsAuthenticated() bool
	AuthUser() *models.User
}

// Pages renders full pages. Action handlers use it to re-render a form with the
// error that stopped it.
type Pages struct {
	loader   *views.Loader
	renderer Renderer
	session  Session
}

// NewPages creates a new Pages.
func NewPages(loader *views.Loader, renderer Renderer, session Session) *Pages {
	return &Pages{loader: loader, renderer: renderer, session: session}
}

func (p *Pages) render(w http.ResponseWriter, status int, name, title, flash string, content any) {
	page := views.Page{Title: title, User: p.session.AuthUser(), Flash: flash, Content: content}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := p.renderer.Render(w, name, page); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Failed to render page")
	}
}

// statusOf maps a view state to the response status.
func statusOf[T any](state views.State[T]) int {
	if !state.IsError() {
		return http.StatusOK
	}
	if state.Code != 0 {
		return state.Code
	}
	return http.StatusBadGateway
}

// failureStatus picks the status for a failed action.
func failureStatus(err error) int {
	if code := client.StatusCode(err); code != 0 {
		return code
	}
	if isValidation(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

var validationErrors = []error{
	services.ErrInvalidBid,
	services.ErrBidTooLow,
	services.ErrInvalidStartingPrice,
	services.ErrEndTimeInPast,
	services.ErrShippingAddressRequired,
	services.ErrTrackingNumberRequired,
	services.ErrDisputeReasonRequired,
}

func isValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// auction re-renders the auction detail page, optionally with a flash message.
func (p *Pages) auction(w http.ResponseWriter, r *http.Request, id string, status int, flash string) {
	state := p.loader.AuctionDetail(r.Context(), id)
	title := "Auction"
	if state.IsPopulated() {
		title = state.Data.Auction.Title
	} else if status == http.StatusOK {
		status = statusOf(state)
	}
	p.render(w, status, "auction.html", title, flash, state)
}

func (p *Pages) requireLogin(w http.ResponseWriter, r *http.Request) bool {
	if p.session.IsAuthenticated() {
		return true
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return false
}
