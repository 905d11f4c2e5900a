package service

import (
	"context"
	"errors"

	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/repository"
)

var (
	ErrAlreadyFavorited = errors.New("recipe already in favorites")
	ErrNotFavorited     = errors.New("recipe not in favorites")
)

type FavoriteService interface {
	Add(ctx context.Context, userID string, recipeID int64) (*models.Recipe, error)
	Remove(ctx context.Context, userID string, recipeID int64) error
}

type favoriteService struct {
	repo       repository.FavoriteRepository
	recipeRepo *repository.RecipeRepo
}

func NewFavoriteService(repo repository.FavoriteRepository, recipeRepo *repository.RecipeRepo) FavoriteService {
	return &favoriteService{
		repo:       repo,
		recipeRepo: recipeRepo,
	}
}

// Add favorites the recipe for the user and returns the recipe for the
// compact response. A second add for the same pair is rejected, whether it
// loses the lookup here or the unique index under a race.
func (s *favoriteService) Add(ctx context.Context, userID string, recipeID int64) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorited
	}

	if err := s.repo.Add(ctx, userID, recipeID); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}

	return recipe, nil
}

func (s *favoriteService) Remove(ctx context.Context, userID string, recipeID int64) error {
	if err := s.repo.Remove(ctx, userID, recipeID); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFavorited
		}
		return err
	}
	return nil
}
