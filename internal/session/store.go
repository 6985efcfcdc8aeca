// Package session persists the client credential pair, standing in for browser
// local storage.
package session

import "errors"

// Keys under which the credential pair is stored.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("session: key not found")

// Store is a flat string key/value store with no expiry or scoping.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}
