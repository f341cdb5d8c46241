package domain

import "errors"

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidName        = errors.New("name must be between 3 and 25 characters")
	ErrPasswordTooShort   = errors.New("password must be at least 5 characters")
	ErrUserNotFound       = errors.New("user not found")
	ErrLinkNotFound       = errors.New("link not found")
	ErrEmailTaken         = errors.New("an account already exists with this email")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("token is expired")
	ErrNotOwner           = errors.New("caller does not own this link")
)
