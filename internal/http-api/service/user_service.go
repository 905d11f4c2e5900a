package service

import (
	"context"
	"errors"

	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/repository"
)

var ErrNoAvatar = errors.New("avatar must not be empty")

// UserProfile is a user annotated with the viewer's subscription flag.
type UserProfile struct {
	User         models.User
	IsSubscribed bool
}

type UserService interface {
	GetByID(ctx context.Context, id, viewerID string) (*UserProfile, error)
	List(ctx context.Context, page, pageSize int, viewerID string) ([]UserProfile, int64, error)
	SetAvatar(ctx context.Context, userID, imageData string) (string, error)
	DeleteAvatar(ctx context.Context, userID string) error
}

type userService struct {
	repo    repository.UserRepository
	subRepo repository.SubscriptionRepository
	images  ImageStore
}

func NewUserService(repo repository.UserRepository, subRepo repository.SubscriptionRepository, images ImageStore) UserService {
	return &userService{
		repo:    repo,
		subRepo: subRepo,
		images:  images,
	}
}

func (s *userService) GetByID(ctx context.Context, id, viewerID string) (*UserProfile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	subscribed := false
	if viewerID != "" && viewerID != id {
		subscribed, err = s.subRepo.Exists(ctx, viewerID, id)
		if err != nil {
			return nil, err
		}
	}

	return &UserProfile{User: *user, IsSubscribed: subscribed}, nil
}

func (s *userService) List(ctx context.Context, page, pageSize int, viewerID string) ([]UserProfile, int64, error) {
	users, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	subscribed := map[string]bool{}
	if viewerID != "" {
		ids := make([]string, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		subscribed, err = s.subRepo.AuthorIDSet(ctx, viewerID, ids)
		if err != nil {
			return nil, 0, err
		}
	}

	profiles := make([]UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, UserProfile{User: u, IsSubscribed: subscribed[u.ID]})
	}
	return profiles, total, nil
}

// SetAvatar stores the submitted base64 image and records its path on the
// user, replacing any previous avatar file.
func (s *userService) SetAvatar(ctx context.Context, userID, imageData string) (string, error) {
	if imageData == "" {
		return "", ErrNoAvatar
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", ErrUserNotFound
	}

	path, err := s.images.SaveDataURI(imageData)
	if err != nil {
		return "", ErrInvalidImage
	}

	if err := s.repo.UpdateAvatar(ctx, userID, &path); err != nil {
		s.images.Remove(path)
		return "", err
	}

	if user.Avatar != nil {
		s.images.Remove(*user.Avatar)
	}
	return path, nil
}

func (s *userService) DeleteAvatar(ctx context.Context, userID string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if err := s.repo.UpdateAvatar(ctx, userID, nil); err != nil {
		return err
	}

	if user.Avatar != nil {
		s.images.Remove(*user.Avatar)
	}
	return nil
}
