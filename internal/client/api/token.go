package api

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/skatuve/skatuve-client/internal/storage"
)

const tokenStorageKey = "api_token"

// StorageTokenSource keeps the issued bearer token in local storage, the
// same place the draft lives, so both survive restarts together.
type StorageTokenSource struct {
	storage storage.Storage
}

// NewStorageTokenSource creates a token source over the given backend.
func NewStorageTokenSource(st storage.Storage) *StorageTokenSource {
	return &StorageTokenSource{storage: st}
}

// Token returns the stored token, or "" when none is stored or the read
// fails. A missing token is not an error here; requests simply go out
// unauthenticated and the server answers accordingly.
func (s *StorageTokenSource) Token() string {
	token, err := s.storage.GetItem(tokenStorageKey)
	if err != nil {
		return ""
	}
	return token
}

// SetToken stores a freshly issued token.
func (s *StorageTokenSource) SetToken(token string) error {
	return s.storage.SetItem(tokenStorageKey, token)
}

// ClearToken removes the stored token, e.g. on sign-out.
func (s *StorageTokenSource) ClearToken() error {
	return s.storage.RemoveItem(tokenStorageKey)
}

// UserIDFromToken peeks at the token's subject claim without verifying the
// signature. The client has no signing key and does not need one: the id
// only namespaces the local draft, and the server re-checks the token on
// every request anyway. Returns "" for anything unreadable.
func UserIDFromToken(token string) string {
	if token == "" {
		return ""
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return ""
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return subject
}
