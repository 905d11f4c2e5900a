package dto

import "recipehub/internal/http-api/service"

// AuthorResponse: an author profile annotated with their recipes and count,
// returned by subscribe and subscription listings
type AuthorResponse struct {
	UserResponse
	Recipes      []RecipeSummary `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

func AuthorFromProfile(p service.AuthorProfile) AuthorResponse {
	recipes := make([]RecipeSummary, 0, len(p.Recipes))
	for _, r := range p.Recipes {
		recipes = append(recipes, RecipeSummaryFromModel(r))
	}
	return AuthorResponse{
		UserResponse: UserFromModel(p.User, p.IsSubscribed),
		Recipes:      recipes,
		RecipesCount: p.RecipesCount,
	}
}

// SubscriptionListResponse: paginated authors the user follows
type SubscriptionListResponse struct {
	Items []AuthorResponse `json:"items"`
	Total int64            `json:"total"`
}
