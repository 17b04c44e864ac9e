package store

import (
	"context"
	"errors"
	"strings"
)

var errEmptyToken = errors.New("store: token is empty")

// TokenStore keeps the opaque CLM bearer token.
type TokenStore struct {
	blob Blob
}

// NewTokenStore wraps blob.
func NewTokenStore(blob Blob) *TokenStore {
	return &TokenStore{blob: blob}
}

// Save stores token after trimming surrounding whitespace.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errEmptyToken
	}
	return s.blob.Write(ctx, KeyToken, []byte(token))
}

// Get returns the stored token or "" when none is stored.
func (s *TokenStore) Get(ctx context.Context) (string, error) {
	data, err := s.blob.Read(ctx, KeyToken)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear forgets the stored token.
func (s *TokenStore) Clear(ctx context.Context) error {
	return s.blob.Delete(ctx, KeyToken)
}
