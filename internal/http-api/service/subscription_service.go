package service

import (
	"context"
	"errors"

	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/repository"
)

var (
	ErrSelfSubscription  = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed to this author")
	ErrNotSubscribed     = errors.New("not subscribed to this author")
	ErrUserNotFound      = errors.New("user not found")
)

// AuthorProfile is an author annotated for the viewer: subscription flag, the
// author's recipes (optionally capped) and their total recipe count.
type AuthorProfile struct {
	User         models.User
	IsSubscribed bool
	Recipes      []models.Recipe
	RecipesCount int64
}

type SubscriptionService interface {
	Subscribe(ctx context.Context, userID, authorID string, recipesLimit int) (*AuthorProfile, error)
	Unsubscribe(ctx context.Context, userID, authorID string) error
	List(ctx context.Context, userID string, page, pageSize, recipesLimit int) ([]AuthorProfile, int64, error)
}

type subscriptionService struct {
	repo       repository.SubscriptionRepository
	userRepo   repository.UserRepository
	recipeRepo *repository.RecipeRepo
}

func NewSubscriptionService(
	repo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	recipeRepo *repository.RecipeRepo,
) SubscriptionService {
	return &subscriptionService{
		repo:       repo,
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
	}
}

// Subscribe creates the follower -> author edge. Self-subscription is always
// rejected, before any lookups.
func (s *subscriptionService) Subscribe(ctx context.Context, userID, authorID string, recipesLimit int) (*AuthorProfile, error) {
	if userID == authorID {
		return nil, ErrSelfSubscription
	}

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	exists, err := s.repo.Exists(ctx, userID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	if err := s.repo.Add(ctx, userID, authorID); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}

	return s.authorProfile(ctx, author, recipesLimit)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, userID, authorID string) error {
	if _, err := s.userRepo.FindByID(ctx, authorID); err != nil {
		return ErrUserNotFound
	}
	if err := s.repo.Remove(ctx, userID, authorID); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotSubscribed
		}
		return err
	}
	return nil
}

func (s *subscriptionService) List(ctx context.Context, userID string, page, pageSize, recipesLimit int) ([]AuthorProfile, int64, error) {
	authors, total, err := s.repo.ListAuthors(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	profiles := make([]AuthorProfile, 0, len(authors))
	for i := range authors {
		profile, err := s.authorProfile(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, total, nil
}

func (s *subscriptionService) authorProfile(ctx context.Context, author *models.User, recipesLimit int) (*AuthorProfile, error) {
	recipes, err := s.recipeRepo.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	return &AuthorProfile{
		User:         *author,
		IsSubscribed: true,
		Recipes:      recipes,
		RecipesCount: count,
	}, nil
}
