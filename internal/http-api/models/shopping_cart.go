package models

import "time"

type ShoppingCart struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_recipe_cart" json:"user_id"`
	RecipeID int64     `gorm:"not null;uniqueIndex:idx_user_recipe_cart" json:"recipe_id"`
	AddedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	// Associations
	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
}

func (ShoppingCart) TableName() string {
	return "shopping_carts"
}
