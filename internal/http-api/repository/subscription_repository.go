package repository

import (
	"context"
	"fmt"

	"recipehub/internal/http-api/models"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Add(ctx context.Context, userID, authorID string) error
	Remove(ctx context.Context, userID, authorID string) error
	Exists(ctx context.Context, userID, authorID string) (bool, error)
	AuthorIDSet(ctx context.Context, userID string, authorIDs []string) (map[string]bool, error)
	ListAuthors(ctx context.Context, userID string, page, pageSize int) ([]models.User, int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Add(ctx context.Context, userID, authorID string) error {
	sub := &models.Subscription{
		UserID:   userID,
		AuthorID: authorID,
	}
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) Remove(ctx context.Context, userID, authorID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Subscription{})

	if result.Error != nil {
		return fmt.Errorf("unsubscribe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AuthorIDSet returns which of authorIDs the user follows.
func (r *subscriptionRepository) AuthorIDSet(ctx context.Context, userID string, authorIDs []string) (map[string]bool, error) {
	set := make(map[string]bool, len(authorIDs))
	if len(authorIDs) == 0 {
		return set, nil
	}
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("subscription author ids: %w", err)
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// ListAuthors returns the authors the user follows, oldest subscription first.
func (r *subscriptionRepository) ListAuthors(ctx context.Context, userID string, page, pageSize int) ([]models.User, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}

	offset := (page - 1) * pageSize

	var authors []models.User
	if err := base.
		Order("subscriptions.added_at asc").
		Limit(pageSize).
		Offset(offset).
		Find(&authors).Error; err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}
	return authors, total, nil
}
