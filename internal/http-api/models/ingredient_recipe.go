package models

// IngredientRecipe holds an ingredient quantity for one recipe. Uniqueness of
// ingredient-per-recipe is enforced in request validation; the composite index
// backs it up against concurrent writers that bypass validation.
type IngredientRecipe struct {
	ID           int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID     int64 `json:"recipe_id" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID int64 `json:"ingredient_id" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int   `json:"amount" gorm:"not null"`

	// Associations
	Recipe     *Recipe     `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

func (IngredientRecipe) TableName() string {
	return "ingredient_recipes"
}
