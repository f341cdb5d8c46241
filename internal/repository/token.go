package repository

import (
	"context"
	"time"
)

type ResetTokenRepository interface {
	// Create stores a token hash for the user. Any prior tokens for the same
	// user are deleted first, so at most one live token exists per user.
	Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// Claim deletes an unexpired token by hash and returns the owning user ID.
	// A second claim of the same token fails: tokens are single use.
	Claim(ctx context.Context, tokenHash string) (userID string, err error)

	// DeleteByUser removes all tokens belonging to the user.
	DeleteByUser(ctx context.Context, userID string) error

	// DeleteExpired purges tokens whose expiry has passed and reports how
	// many rows were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
