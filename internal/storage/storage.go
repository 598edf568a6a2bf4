// Package storage provides the device-local key-value store backing the
// client's cached state: the onboarding draft, the API token, and the
// cached profile copy.
package storage

import "github.com/pkg/errors"

// ErrNotFound is returned by GetItem for a missing key.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a keyed string store. Implementations are best-effort caches:
// callers treat every failure as a miss, never as fatal.
type Storage interface {
	GetItem(key string) (string, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}
