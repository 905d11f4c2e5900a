package repository

import (
	"context"
	"fmt"

	"recipehub/internal/http-api/models"

	"gorm.io/gorm"
)

type ShortLinkRepository interface {
	Create(ctx context.Context, link *models.ShortLink) error
	FindByToken(ctx context.Context, token string) (*models.ShortLink, error)
	FindByRecipe(ctx context.Context, recipeID int64) (*models.ShortLink, error)
}

type shortLinkRepository struct {
	db *gorm.DB
}

func NewShortLinkRepository(db *gorm.DB) ShortLinkRepository {
	return &shortLinkRepository{db: db}
}

func (r *shortLinkRepository) Create(ctx context.Context, link *models.ShortLink) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return fmt.Errorf("create short link: %w", err)
	}
	return nil
}

func (r *shortLinkRepository) FindByToken(ctx context.Context, token string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *shortLinkRepository) FindByRecipe(ctx context.Context, recipeID int64) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}
