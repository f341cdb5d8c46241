package domain

import "time"

// ResetTokenTTL bounds how long a password-reset token stays valid.
const ResetTokenTTL = 15 * time.Minute

// ResetToken authorizes a single password change. Only the SHA-256 hash of
// the value handed to the user is ever stored.
type ResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
}
