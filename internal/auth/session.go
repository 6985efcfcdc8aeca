package auth

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/session"
	"github.com/rs/zerolog/log"
)

// Session is the single accessor for the persisted credential pair. The API client,
// the views and the CLI all read the token and user through it.
type Session struct {
	store session.Store
}

// NewSession creates a Session over the given store.
func NewSession(store session.Store) *Session {
	return &Session{store: store}
}

// Token returns the stored bearer token, or "" when none is stored.
func (s *Session) Token() string {
	token, err := s.store.Get(session.TokenKey)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			log.Warn().Err(err).Msg("Failed to read stored token")
		}
		return ""
	}
	return token
}

// IsAuthenticated is true iff a non-empty token is stored. The token is neither
// verified nor checked for expiry.
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// User returns the last persisted user, or nil if it is absent or does not parse.
func (s *Session) User() *models.User {
	raw, err := s.store.Get(session.UserKey)
	if err != nil || strings.TrimSpace(raw) == "" {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Debug().Err(err).Msg("Stored user is not valid JSON, treating as signed out")
		return nil
	}
	return &user
}

// Save persists the token and user under their two keys.
func (s *Session) Save(token string, user models.User) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.store.Set(session.TokenKey, token); err != nil {
		return err
	}
	return s.store.Set(session.UserKey, string(encoded))
}

// SetToken overwrites the stored token alone.
func (s *Session) SetToken(token string) error {
	return s.store.Set(session.TokenKey, token)
}

// Clear removes both keys.
func (s *Session) Clear() error {
	if err := s.store.Remove(session.TokenKey); err != nil {
		return err
	}
	return s.store.Remove(session.UserKey)
}
