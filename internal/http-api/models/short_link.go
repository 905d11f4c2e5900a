package models

import "time"

// ShortLink maps a redirect token to a recipe. Links are permanent: one token
// per recipe, minted on first request.
type ShortLink struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null;size:16" json:"token"`
	RecipeID  int64     `gorm:"uniqueIndex;not null" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ShortLink) TableName() string {
	return "short_links"
}
