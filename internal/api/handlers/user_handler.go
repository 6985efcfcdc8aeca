package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles profile reads and edits for any user id.
type UserHandler struct {
	service services.UserServiceProvider
	pages   *Pages
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, pages *Pages) *UserHandler {
	return &UserHandler{service: service, pages: pages}
}

// Get returns the user as JSON, including every field the API sent.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		log.Warn().Err(err).Str("user_id", id).Msg("Failed to get user by ID")
		http.Error(w, err.Error(), failureStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// Update submits the profile form. Empty fields are left out of the request.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	update := models.ProfileUpdate{
		Name:    formField(r, "name"),
		Email:   formField(r, "email"),
		Phone:   formField(r, "phone"),
		Address: formField(r, "address"),
	}
	if role := formField(r, "role"); role != nil {
		update.Role = models.Ptr(models.Role(*role))
	}

	if _, err := h.service.UpdateUser(r.Context(), id, update); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to update user")
		state := h.pages.loader.Profile(r.Context(), id)
		h.pages.render(w, failureStatus(err), "profile.html", "Profile", err.Error(), state)
		return
	}
	http.Redirect(w, r, "/users/"+id, http.StatusSeeOther)
}

func formField(r *http.Request, name string) *string {
	if _, ok := r.PostForm[name]; !ok {
		return nil
	}
	v := r.PostForm.Get(name)
	if v == "" {
		return nil
	}
	return &v
}
