package repository

import (
	"context"
	"fmt"

	"recipehub/internal/http-api/models"

	"gorm.io/gorm"
)

type IngredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) *IngredientRepo {
	return &IngredientRepo{db: db}
}

// GetAll lists ingredients, optionally narrowed to a case-insensitive name
// prefix.
func (r *IngredientRepo) GetAll(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	q := r.db.WithContext(ctx).Order("name asc")
	if namePrefix != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", namePrefix+"%")
	}
	var list []models.Ingredient
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get ingredients: %w", err)
	}
	return list, nil
}

func (r *IngredientRepo) GetByID(ctx context.Context, id int64) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := r.db.WithContext(ctx).First(&ing, id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

// GetByIDs returns the ingredients matching ids; missing ids are simply absent
// from the result, callers compare lengths to detect unknown references.
func (r *IngredientRepo) GetByIDs(ctx context.Context, ids []int64) ([]models.Ingredient, error) {
	var list []models.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get ingredients by ids: %w", err)
	}
	return list, nil
}

func (r *IngredientRepo) Create(ctx context.Context, ing *models.Ingredient) error {
	if err := r.db.WithContext(ctx).Create(ing).Error; err != nil {
		return fmt.Errorf("create ingredient: %w", err)
	}
	return nil
}
