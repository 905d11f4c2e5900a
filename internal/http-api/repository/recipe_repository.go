package repository

import (
	"context"
	"fmt"

	"recipehub/internal/http-api/models"

	"gorm.io/gorm"
)

// RecipeFilter narrows recipe listings. Zero values mean "no filter".
// FavoritedBy/InCartOf hold the viewer's user id and are only set for
// authenticated requests.
type RecipeFilter struct {
	AuthorID    string
	TagSlugs    []string
	FavoritedBy string
	InCartOf    string
}

type RecipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) *RecipeRepo {
	return &RecipeRepo{db: db}
}

func (r *RecipeRepo) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *RecipeRepo) List(ctx context.Context, filter RecipeFilter, page, pageSize int) ([]models.Recipe, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Recipe{})

	if filter.AuthorID != "" {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		q = q.Where("recipes.id IN (?)", tagged)
	}
	if filter.FavoritedBy != "" {
		q = q.Where("recipes.id IN (?)", r.db.Table("favorites").
			Select("recipe_id").Where("user_id = ?", filter.FavoritedBy))
	}
	if filter.InCartOf != "" {
		q = q.Where("recipes.id IN (?)", r.db.Table("shopping_carts").
			Select("recipe_id").Where("user_id = ?", filter.InCartOf))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}

	offset := (page - 1) * pageSize

	var list []models.Recipe
	if err := q.
		Preload("Author").
		Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		Order("pub_date desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}

	return list, total, nil
}

// Create inserts the recipe row, its ingredient-quantity rows and tag links in
// one transaction. Any failure rolls back everything: a committed recipe
// always has its full ingredient and tag sets.
func (r *RecipeRepo) Create(ctx context.Context, recipe *models.Recipe, ingredients []models.IngredientRecipe, tags []models.Tag) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "RecipeIngredients").Create(recipe).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		for i := range ingredients {
			ingredients[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&ingredients).Error; err != nil {
			return fmt.Errorf("create recipe ingredients: %w", err)
		}
		if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
			return fmt.Errorf("set recipe tags: %w", err)
		}
		return nil
	})
	return err
}

// Update applies recipe fields and fully replaces the ingredient and tag sets:
// old rows are deleted and new ones inserted, never diffed. Runs in one
// transaction so a failure leaves the recipe in its prior state.
func (r *RecipeRepo) Update(ctx context.Context, recipe *models.Recipe, ingredients []models.IngredientRecipe, tags []models.Tag) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "RecipeIngredients", "Author", "PubDate").Save(recipe).Error; err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientRecipe{}).Error; err != nil {
			return fmt.Errorf("clear recipe ingredients: %w", err)
		}
		for i := range ingredients {
			ingredients[i].ID = 0
			ingredients[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&ingredients).Error; err != nil {
			return fmt.Errorf("recreate recipe ingredients: %w", err)
		}
		if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
			return fmt.Errorf("replace recipe tags: %w", err)
		}
		return nil
	})
	return err
}

func (r *RecipeRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Select("Tags", "RecipeIngredients").Delete(&models.Recipe{ID: id})
	if result.Error != nil {
		return fmt.Errorf("delete recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByAuthor returns the author's recipes newest first, capped at limit when
// limit > 0.
func (r *RecipeRepo) ListByAuthor(ctx context.Context, authorID string, limit int) ([]models.Recipe, error) {
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []models.Recipe
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list recipes by author: %w", err)
	}
	return list, nil
}

func (r *RecipeRepo) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count recipes by author: %w", err)
	}
	return count, nil
}
