package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/repository"
)

var (
	ErrAlreadyInCart = errors.New("recipe already in shopping cart")
	ErrNotInCart     = errors.New("recipe not in shopping cart")
)

// ShoppingListHeader is the first line of the exported shopping list.
const ShoppingListHeader = "Shopping list:"

type ShoppingCartService interface {
	Add(ctx context.Context, userID string, recipeID int64) (*models.Recipe, error)
	Remove(ctx context.Context, userID string, recipeID int64) error
	ShoppingList(ctx context.Context, userID string) (string, error)
}

type shoppingCartService struct {
	repo       repository.ShoppingCartRepository
	recipeRepo *repository.RecipeRepo
}

func NewShoppingCartService(repo repository.ShoppingCartRepository, recipeRepo *repository.RecipeRepo) ShoppingCartService {
	return &shoppingCartService{
		repo:       repo,
		recipeRepo: recipeRepo,
	}
}

func (s *shoppingCartService) Add(ctx context.Context, userID string, recipeID int64) (*models.Recipe, error) {
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
		return nil, ErrAlreadyInCart
	}

	if err := s.repo.Add(ctx, userID, recipeID); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrAlreadyInCart
		}
		return nil, err
	}

	return recipe, nil
}

func (s *shoppingCartService) Remove(ctx context.Context, userID string, recipeID int64) error {
	if err := s.repo.Remove(ctx, userID, recipeID); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotInCart
		}
		return err
	}
	return nil
}

// ShoppingList renders the user's consolidated shopping list: one line per
// distinct (name, unit) pair with amounts summed across cart recipes. An
// empty cart yields the header line only.
func (s *shoppingCartService) ShoppingList(ctx context.Context, userID string) (string, error) {
	rows, err := s.repo.AggregateIngredients(ctx, userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(ShoppingListHeader + "\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "\n%s - %d %s", row.Name, row.Total, row.MeasurementUnit)
	}
	return b.String(), nil
}
