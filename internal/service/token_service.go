package service

import (
	"context"

	"churchapp/internal/domain"
)

// TokenService manages the opaque singleton bearer token per user.
type TokenService interface {
	// IssueOrFetch returns the user's existing token or mints one.
	IssueOrFetch(ctx context.Context, userID domain.UserID) (*domain.AuthToken, error)
	// Authenticate resolves a presented bearer key to its user.
	Authenticate(ctx context.Context, key string) (*domain.UserProfile, error)
	// Revoke discards a single presented key (logout).
	Revoke(ctx context.Context, key string) error
	RevokeForUser(ctx context.Context, userID domain.UserID) error
}
