package repository

import (
	"context"

	"github.com/lynquer/lynquer-api/internal/domain"
)

// LinkUpdate carries a partial link edit. Nil fields are left untouched.
type LinkUpdate struct {
	Title *string
	URL   *string
}

type LinkRepository interface {
	Create(ctx context.Context, link *domain.Link) (*domain.Link, error)
	FindByID(ctx context.Context, id string) (*domain.Link, error)

	// ListByUser returns the user's links ordered ascending by position.
	ListByUser(ctx context.Context, userID string) ([]domain.Link, error)

	Update(ctx context.Context, id string, upd LinkUpdate) error
	SetVisible(ctx context.Context, id string, visible bool) error
	SetPosition(ctx context.Context, id string, position int) error
	Delete(ctx context.Context, id string) error
}
