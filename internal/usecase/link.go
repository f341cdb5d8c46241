package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lynquer/lynquer-api/internal/domain"
	"github.com/lynquer/lynquer-api/internal/repository"
)

type LinkUsecase struct {
	links repository.LinkRepository
	users repository.UserRepository
}

func NewLinkUsecase(links repository.LinkRepository, users repository.UserRepository) *LinkUsecase {
	return &LinkUsecase{links: links, users: users}
}

// Create persists the link and then bumps the owner's link counter. The two
// writes are not transactional: a failed increment leaves the counter behind
// the true link count.
func (u *LinkUsecase) Create(ctx context.Context, userID, title, url string) (*domain.Link, error) {
	link := &domain.Link{
		UserID:  userID,
		Title:   title,
		URL:     url,
		Visible: true,
	}

	created, err := u.links.Create(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}

	if err := u.users.IncrementLinkCount(ctx, userID); err != nil {
		return nil, fmt.Errorf("increment link count: %w", err)
	}
	return created, nil
}

// ListMine returns the caller's links ascending by position.
func (u *LinkUsecase) ListMine(ctx context.Context, userID string) ([]domain.Link, error) {
	links, err := u.links.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

// ListByUsername resolves the username and returns all of that user's links,
// hidden ones included. Visibility filtering is left to the client.
func (u *LinkUsecase) ListByUsername(ctx context.Context, username string) ([]domain.Link, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	links, err := u.links.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

// Update edits an owned link.
func (u *LinkUsecase) Update(ctx context.Context, userID, linkID string, upd repository.LinkUpdate) error {
	if err := u.checkOwner(ctx, userID, linkID); err != nil {
		return err
	}
	if err := u.links.Update(ctx, linkID, upd); err != nil {
		return fmt.Errorf("update link: %w", err)
	}
	return nil
}

// Delete removes an owned link.
func (u *LinkUsecase) Delete(ctx context.Context, userID, linkID string) error {
	if err := u.checkOwner(ctx, userID, linkID); err != nil {
		return err
	}
	if err := u.links.Delete(ctx, linkID); err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}

// SetVisibility toggles whether an owned link shows up on the public page.
func (u *LinkUsecase) SetVisibility(ctx context.Context, userID, linkID string, visible bool) error {
	if err := u.checkOwner(ctx, userID, linkID); err != nil {
		return err
	}
	if err := u.links.SetVisible(ctx, linkID, visible); err != nil {
		return fmt.Errorf("set visibility: %w", err)
	}
	return nil
}

// Reorder applies each position update independently and concurrently. There
// is no ownership check on the items, and a failed item does not roll back
// the ones that succeeded.
func (u *LinkUsecase) Reorder(ctx context.Context, items []domain.LinkPosition) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, item := range items {
		wg.Add(1)
		go func(item domain.LinkPosition) {
			defer wg.Done()
			if err := u.links.SetPosition(ctx, item.ID, item.Position); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("link %s: %w", item.ID, err))
				mu.Unlock()
			}
		}(item)
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (u *LinkUsecase) checkOwner(ctx context.Context, userID, linkID string) error {
	link, err := u.links.FindByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return domain.ErrLinkNotFound
		}
		return fmt.Errorf("find link: %w", err)
	}
	if link.UserID != userID {
		return domain.ErrNotOwner
	}
	return nil
}
