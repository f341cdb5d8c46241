package repository

import (
	"context"

	"github.com/lynquer/lynquer-api/internal/domain"
)

// UserUpdate carries a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	Name     *string
	Username *string
	Bio      *string
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	SetProfileImageURL(ctx context.Context, id, imageURL string) (*domain.User, error)
	SetPasswordHash(ctx context.Context, id, passwordHash string) error
	IncrementLinkCount(ctx context.Context, id string) error
}
