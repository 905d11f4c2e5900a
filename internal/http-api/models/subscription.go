package models

import "time"

// Subscription is a directed follower -> author edge.
type Subscription struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_author" json:"user_id"`
	AuthorID string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_author" json:"author_id"`
	AddedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	// Associations
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
