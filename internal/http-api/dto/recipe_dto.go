package dto

import (
	"time"

	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/service"
)

// RecipeIngredientRequest: one submitted (ingredient id, amount) pair
type RecipeIngredientRequest struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// RecipeRequest: payload for creating or updating a recipe. Image is a base64
// data URI; on update an empty image keeps the current one.
type RecipeRequest struct {
	Name        string                    `json:"name" binding:"required,max=256"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required"`
	Image       string                    `json:"image"`
	Ingredients []RecipeIngredientRequest `json:"ingredients"`
	Tags        []int64                   `json:"tags"`
}

// ToInput converts the request into the service-layer payload.
func (r RecipeRequest) ToInput() service.RecipeInput {
	ingredients := make([]service.IngredientAmount, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, service.IngredientAmount{ID: ing.ID, Amount: ing.Amount})
	}
	return service.RecipeInput{
		Name:        r.Name,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		Image:       r.Image,
		Ingredients: ingredients,
		TagIDs:      r.Tags,
	}
}

// RecipeIngredientResponse: one hydrated ingredient line of a recipe
type RecipeIngredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse: full recipe representation with viewer flags
type RecipeResponse struct {
	ID               int64                      `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
	PubDate          time.Time                  `json:"pub_date"`
}

func RecipeFromDetail(d service.RecipeDetail) RecipeResponse {
	r := d.Recipe

	tags := make([]TagResponse, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, TagFromModel(t))
	}

	ingredients := make([]RecipeIngredientResponse, 0, len(r.RecipeIngredients))
	for _, row := range r.RecipeIngredients {
		resp := RecipeIngredientResponse{
			ID:     row.IngredientID,
			Amount: row.Amount,
		}
		if row.Ingredient != nil {
			resp.Name = row.Ingredient.Name
			resp.MeasurementUnit = row.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, resp)
	}

	var author UserResponse
	if r.Author != nil {
		author = UserFromModel(*r.Author, d.AuthorSubscribed)
	}

	return RecipeResponse{
		ID:               r.ID,
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      d.IsFavorited,
		IsInShoppingCart: d.IsInShoppingCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		PubDate:          r.PubDate,
	}
}

// RecipeSummary: compact shape returned by the favorite/cart toggles and
// embedded in subscription listings
type RecipeSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func RecipeSummaryFromModel(r models.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

// RecipeListResponse: paginated recipe listing
type RecipeListResponse struct {
	Items []RecipeResponse `json:"items"`
	Total int64            `json:"total"`
}

// ShortLinkResponse mirrors the public short-link payload key
type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}
