package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/isdelr/auction-lab/internal/auth"
	"github.com/isdelr/auction-lab/internal/models"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles login, registration and logout for the local session.
type AuthHandler struct {
	service auth.ServiceProvider
	pages   *Pages
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service auth.ServiceProvider, pages *Pages) *AuthHandler {
	return &AuthHandler{service: service, pages: pages}
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, http.StatusOK, "login.html", "Log in", "", "")
}

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, http.StatusOK, "register.html", "Register", "", "")
}

// Login posts the form credentials to the API and stores the result.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")

	if _, err := h.service.Login(r.Context(), email, r.PostForm.Get("password")); err != nil {
		h.pages.render(w, failureStatus(err), "login.html", "Log in", err.Error(), email)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Register creates an account with whatever the form holds.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")

	if _, err := h.service.Register(r.Context(), email, r.PostForm.Get("password"), r.PostForm.Get("name")); err != nil {
		h.pages.render(w, failureStatus(err), "register.html", "Register", err.Error(), email)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(); err != nil {
		log.Error().Err(err).Msg("Failed to clear session")
		http.Error(w, "Failed to log out: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SessionInfo describes the stored login as JSON. The token claims are decoded
// without verification.
type SessionInfo struct {
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user"`
	Claims        *auth.Claims `json:"claims,omitempty"`
	Expired       bool         `json:"expired"`
}

// Session reports the stored login.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	info := SessionInfo{Authenticated: h.service.IsAuthenticated(), User: h.service.AuthUser()}
	if claims, err := h.service.Claims(); err == nil {
		info.Claims = claims
		info.Expired = claims.Expired(time.Now())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}
