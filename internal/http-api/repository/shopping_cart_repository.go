package repository

import (
	"context"
	"fmt"

	"recipehub/internal/http-api/models"

	"gorm.io/gorm"
)

// ShoppingListRow is one aggregated line of a user's shopping list: the same
// ingredient across several cart recipes collapses into one row with a summed
// amount. Name and unit together form the grouping key.
type ShoppingListRow struct {
	Name            string
	MeasurementUnit string
	Total           int
}

type ShoppingCartRepository interface {
	Add(ctx context.Context, userID string, recipeID int64) error
	Remove(ctx context.Context, userID string, recipeID int64) error
	Exists(ctx context.Context, userID string, recipeID int64) (bool, error)
	RecipeIDSet(ctx context.Context, userID string, recipeIDs []int64) (map[int64]bool, error)
	AggregateIngredients(ctx context.Context, userID string) ([]ShoppingListRow, error)
}

type shoppingCartRepository struct {
	db *gorm.DB
}

func NewShoppingCartRepository(db *gorm.DB) ShoppingCartRepository {
	return &shoppingCartRepository{db: db}
}

func (r *shoppingCartRepository) Add(ctx context.Context, userID string, recipeID int64) error {
	cart := &models.ShoppingCart{
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return fmt.Errorf("add to shopping cart: %w", err)
	}
	return nil
}

func (r *shoppingCartRepository) Remove(ctx context.Context, userID string, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCart{})

	if result.Error != nil {
		return fmt.Errorf("remove from shopping cart: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *shoppingCartRepository) Exists(ctx context.Context, userID string, recipeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *shoppingCartRepository) RecipeIDSet(ctx context.Context, userID string, recipeIDs []int64) (map[int64]bool, error) {
	set := make(map[int64]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return set, nil
	}
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShoppingCart{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("cart recipe ids: %w", err)
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// AggregateIngredients joins the user's cart to its recipes' ingredient rows,
// groups by (name, measurement_unit) and sums amounts. Ordered by name then
// unit so the rendered list is deterministic.
func (r *shoppingCartRepository) AggregateIngredients(ctx context.Context, userID string) ([]ShoppingListRow, error) {
	var rows []ShoppingListRow
	if err := r.db.WithContext(ctx).
		Table("ingredient_recipes").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_recipes.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_recipes.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_recipes.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate shopping list: %w", err)
	}
	return rows, nil
}
