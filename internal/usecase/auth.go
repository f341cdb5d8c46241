package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lynquer/lynquer-api/internal/domain"
	"github.com/lynquer/lynquer-api/internal/email"
	"github.com/lynquer/lynquer-api/internal/repository"
	"github.com/lynquer/lynquer-api/internal/validation"
)

const (
	sessionTTL = 7 * 24 * time.Hour

	minPasswordLen = 5
	minNameLen     = 3
	maxNameLen     = 25
)

type AuthUsecase struct {
	users        repository.UserRepository
	tokens       repository.ResetTokenRepository
	email        email.Sender
	tokenSecret  []byte
	sessionTTL   time.Duration
	resetTTL     time.Duration
	frontendBase string
}

func NewAuthUsecase(
	users repository.UserRepository,
	tokens repository.ResetTokenRepository,
	emailSender email.Sender,
	tokenSecret []byte,
	frontendBase string,
) *AuthUsecase {
	return &AuthUsecase{
		users:        users,
		tokens:       tokens,
		email:        emailSender,
		tokenSecret:  tokenSecret,
		sessionTTL:   sessionTTL,
		resetTTL:     domain.ResetTokenTTL,
		frontendBase: frontendBase,
	}
}

// Register validates the input, creates the user (hashing the password and
// deriving the username at construction), and issues a session token.
func (u *AuthUsecase) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if !validation.ValidLength(name, minNameLen, maxNameLen) {
		return nil, "", domain.ErrInvalidName
	}
	if !validation.ValidEmail(email) {
		return nil, "", domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, "", domain.ErrPasswordTooShort
	}

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return nil, "", fmt.Errorf("new user: %w", err)
	}

	if _, err := u.users.FindByEmail(ctx, user.Email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", fmt.Errorf("check existing email: %w", err)
	}

	created, err := u.users.Create(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := u.IssueSessionToken(created.ID)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Login verifies the credentials, clears any outstanding reset tokens for the
// user, and issues a fresh session token.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*domain.User, string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := u.tokens.DeleteByUser(ctx, user.ID); err != nil {
		return nil, "", fmt.Errorf("clear reset tokens: %w", err)
	}

	token, err := u.IssueSessionToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueSessionToken signs a stateless HS256 token embedding the user ID with
// a 7-day expiry.
func (u *AuthUsecase) IssueSessionToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(u.sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.tokenSecret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ForgotPassword generates a reset token, stores its hash with a 15-minute
// expiry, and emails the reset link. Prior tokens for the user are replaced.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	raw := make([]byte, 32)
	if _, err = io.ReadFull(rand.Reader, raw); err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	rawToken := hex.EncodeToString(raw) + user.ID
	tokenHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))

	expiresAt := time.Now().Add(u.resetTTL)
	if err = u.tokens.Create(ctx, user.ID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := u.frontendBase + "/resetPassword/" + rawToken
	subject := "Reset your password"
	body := fmt.Sprintf(
		`<p>Hi %s,</p><p>Click the link below to reset your password (expires in 15 minutes):</p><p><a href="%s">%s</a></p>`,
		user.Name, link, link,
	)
	if err = u.email.Send(ctx, user.Email, subject, body); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// ResetPassword claims the presented token and stores the new password hash.
// Tokens are single use: a second reset with the same token fails.
func (u *AuthUsecase) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return domain.ErrPasswordTooShort
	}

	tokenHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))
	userID, err := u.tokens.Claim(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return domain.ErrTokenExpired
		}
		return fmt.Errorf("claim reset token: %w", err)
	}

	hash, err := domain.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.users.SetPasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	return nil
}
