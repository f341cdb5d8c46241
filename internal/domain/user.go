package domain

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type User struct {
	ID           string
	Name         string
	Username     string
	Email        string
	PasswordHash string
	Verified     bool
	Bio          *string
	IsPrivate    bool

	ProfileImageURL   *string
	NumberOfLinks     int
	BillingCustomerID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the profile view safe to return to clients.
// The password hash never leaves the domain layer.
type PublicUser struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Verified        bool      `json:"verified"`
	Bio             *string   `json:"bio,omitempty"`
	IsPrivate       bool      `json:"is_private"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	NumberOfLinks   int       `json:"number_of_links"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewUser normalizes the email, derives the username from it, and hashes the
// password. All field derivation happens here, at the call site, rather than
// in a persistence hook.
func NewUser(name, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u := &User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Username: UsernameFromEmail(email),
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// UsernameFromEmail returns the lower-cased local part of the email address.
// It is re-derived whenever the email changes.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strings.ToLower(local)
}

// HashPassword returns a bcrypt hash of plain.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// SetPassword replaces the stored hash with a bcrypt hash of plain.
func (u *User) SetPassword(plain string) error {
	hash, err := HashPassword(plain)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// Public returns the client-facing view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:              u.ID,
		Name:            u.Name,
		Username:        u.Username,
		Email:           u.Email,
		Verified:        u.Verified,
		Bio:             u.Bio,
		IsPrivate:       u.IsPrivate,
		ProfileImageURL: u.ProfileImageURL,
		NumberOfLinks:   u.NumberOfLinks,
		CreatedAt:       u.CreatedAt,
	}
}
