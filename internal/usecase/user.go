package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lynquer/lynquer-api/internal/domain"
	"github.com/lynquer/lynquer-api/internal/repository"
	"github.com/lynquer/lynquer-api/internal/upload"
)

type UserUsecase struct {
	users    repository.UserRepository
	uploader upload.Uploader
}

func NewUserUsecase(users repository.UserRepository, uploader upload.Uploader) *UserUsecase {
	return &UserUsecase{users: users, uploader: uploader}
}

// Profile returns the caller's own profile view.
func (u *UserUsecase) Profile(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	pub := user.Public()
	return &pub, nil
}

// UpdateProfile applies a partial update. A username already owned by a
// different user is rejected as a conflict.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID string, upd repository.UserUpdate) (*domain.User, error) {
	if upd.Username != nil {
		owner, err := u.users.FindByUsername(ctx, *upd.Username)
		switch {
		case err == nil && owner.ID != userID:
			return nil, domain.ErrUsernameTaken
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return nil, fmt.Errorf("check username: %w", err)
		}
	}

	user, err := u.users.Update(ctx, userID, upd)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// SetProfileImage streams the file to the image host and stores the returned URL.
func (u *UserUsecase) SetProfileImage(ctx context.Context, userID, filename string, file io.Reader) (*domain.User, error) {
	imageURL, err := u.uploader.Upload(ctx, filename, file)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	user, err := u.users.SetProfileImageURL(ctx, userID, imageURL)
	if err != nil {
		return nil, fmt.Errorf("store image url: %w", err)
	}
	return user, nil
}
