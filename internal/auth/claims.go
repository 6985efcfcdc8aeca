package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of the token payload shown to the user.
type Claims struct {
	UserID    string `json:"userId,omitempty"`
	AccountID string `json:"id,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserIdentifier returns the first user identifier present in the claims.
func (c *Claims) UserIdentifier() string {
	switch {
	case c.UserID != "":
		return c.UserID
	case c.AccountID != "":
		return c.AccountID
	default:
		return c.RegisteredClaims.Subject
	}
}

// Expired reports whether exp lies in the past. Nothing acts on it; it is display text.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(c.ExpiresAt.Time)
}

// DecodeClaims reads the token payload without checking the signature or expiry.
func DecodeClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}
