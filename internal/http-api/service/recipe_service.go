package service

import (
	"context"
	"errors"
	"strings"

	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/repository"
)

var (
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrNotRecipeAuthor     = errors.New("only the author can modify this recipe")
	ErrNoIngredients       = errors.New("recipe needs at least one ingredient")
	ErrDuplicateIngredient = errors.New("recipe lists the same ingredient twice")
	ErrInvalidAmount       = errors.New("ingredient amount must be at least 1")
	ErrUnknownIngredient   = errors.New("unknown ingredient")
	ErrNoTags              = errors.New("recipe needs at least one tag")
	ErrDuplicateTag        = errors.New("recipe lists the same tag twice")
	ErrUnknownTag          = errors.New("unknown tag")
	ErrEmptyImage          = errors.New("image must not be empty")
	ErrInvalidImage        = errors.New("image must be a base64 data URI")
	ErrInvalidCookingTime  = errors.New("cooking time must be at least 1")
	ErrEmptyName           = errors.New("name must not be empty")
	ErrEmptyText           = errors.New("text must not be empty")
)

// IngredientAmount is one submitted (ingredient id, amount) pair.
type IngredientAmount struct {
	ID     int64
	Amount int
}

// RecipeInput is the payload for creating or updating a recipe aggregate.
// Image is a base64 data URI; empty on update means "keep the current image".
type RecipeInput struct {
	Name        string
	Text        string
	CookingTime int
	Image       string
	Ingredients []IngredientAmount
	TagIDs      []int64
}

// RecipeDetail is a recipe hydrated with the viewer's per-user flags.
type RecipeDetail struct {
	Recipe           models.Recipe
	IsFavorited      bool
	IsInShoppingCart bool
	AuthorSubscribed bool
}

// ImageStore persists submitted images; satisfied by media.Store.
type ImageStore interface {
	SaveDataURI(uri string) (string, error)
	Remove(relPath string) error
}

type RecipeService interface {
	GetByID(ctx context.Context, id int64, viewerID string) (*RecipeDetail, error)
	List(ctx context.Context, filter repository.RecipeFilter, page, pageSize int, viewerID string) ([]RecipeDetail, int64, error)
	Create(ctx context.Context, author *models.User, in RecipeInput) (*RecipeDetail, error)
	Update(ctx context.Context, actor *models.User, recipeID int64, in RecipeInput) (*RecipeDetail, error)
	Delete(ctx context.Context, actor *models.User, recipeID int64) error
}

type recipeService struct {
	repo           *repository.RecipeRepo
	ingredientRepo *repository.IngredientRepo
	tagRepo        *repository.TagRepo
	favoriteRepo   repository.FavoriteRepository
	cartRepo       repository.ShoppingCartRepository
	subRepo        repository.SubscriptionRepository
	images         ImageStore
}

func NewRecipeService(
	repo *repository.RecipeRepo,
	ingredientRepo *repository.IngredientRepo,
	tagRepo *repository.TagRepo,
	favoriteRepo repository.FavoriteRepository,
	cartRepo repository.ShoppingCartRepository,
	subRepo repository.SubscriptionRepository,
	images ImageStore,
) RecipeService {
	return &recipeService{
		repo:           repo,
		ingredientRepo: ingredientRepo,
		tagRepo:        tagRepo,
		favoriteRepo:   favoriteRepo,
		cartRepo:       cartRepo,
		subRepo:        subRepo,
		images:         images,
	}
}

func (s *recipeService) GetByID(ctx context.Context, id int64, viewerID string) (*RecipeDetail, error) {
	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return s.annotateOne(ctx, viewerID, recipe)
}

func (s *recipeService) List(ctx context.Context, filter repository.RecipeFilter, page, pageSize int, viewerID string) ([]RecipeDetail, int64, error) {
	recipes, total, err := s.repo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	details, err := s.annotate(ctx, viewerID, recipes)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (s *recipeService) Create(ctx context.Context, author *models.User, in RecipeInput) (*RecipeDetail, error) {
	ingredients, tags, err := s.validateInput(ctx, in)
	if err != nil {
		return nil, err
	}
	if in.Image == "" {
		return nil, ErrEmptyImage
	}

	imagePath, err := s.images.SaveDataURI(in.Image)
	if err != nil {
		return nil, ErrInvalidImage
	}

	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        in.Name,
		Image:       imagePath,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}

	if err := s.repo.Create(ctx, recipe, ingredients, tags); err != nil {
		s.images.Remove(imagePath)
		return nil, err
	}

	return s.GetByID(ctx, recipe.ID, author.ID)
}

func (s *recipeService) Update(ctx context.Context, actor *models.User, recipeID int64, in RecipeInput) (*RecipeDetail, error) {
	existing, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if existing.AuthorID != actor.ID && !actor.IsAdmin() {
		return nil, ErrNotRecipeAuthor
	}

	ingredients, tags, err := s.validateInput(ctx, in)
	if err != nil {
		return nil, err
	}

	imagePath := existing.Image
	if in.Image != "" {
		imagePath, err = s.images.SaveDataURI(in.Image)
		if err != nil {
			return nil, ErrInvalidImage
		}
	}

	recipe := &models.Recipe{
		ID:          existing.ID,
		AuthorID:    existing.AuthorID,
		Name:        in.Name,
		Image:       imagePath,
		Text:        in.Text,
		CookingTime: in.CookingTime,
		PubDate:     existing.PubDate,
	}

	if err := s.repo.Update(ctx, recipe, ingredients, tags); err != nil {
		if imagePath != existing.Image {
			s.images.Remove(imagePath)
		}
		return nil, err
	}

	return s.GetByID(ctx, recipe.ID, actor.ID)
}

func (s *recipeService) Delete(ctx context.Context, actor *models.User, recipeID int64) error {
	existing, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrRecipeNotFound
		}
		return err
	}

	if existing.AuthorID != actor.ID && !actor.IsAdmin() {
		return ErrNotRecipeAuthor
	}

	if err := s.repo.Delete(ctx, recipeID); err != nil {
		return err
	}
	s.images.Remove(existing.Image)
	return nil
}

// validateInput checks the submitted ingredient and tag sets and resolves
// them against the catalog. Nothing is written before this passes, so a
// rejected payload leaves no partial state.
func (s *recipeService) validateInput(ctx context.Context, in RecipeInput) ([]models.IngredientRecipe, []models.Tag, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, nil, ErrEmptyName
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, nil, ErrEmptyText
	}
	if in.CookingTime < 1 {
		return nil, nil, ErrInvalidCookingTime
	}

	if len(in.Ingredients) == 0 {
		return nil, nil, ErrNoIngredients
	}
	seenIngredients := make(map[int64]bool, len(in.Ingredients))
	ingredientIDs := make([]int64, 0, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		if ing.Amount < 1 {
			return nil, nil, ErrInvalidAmount
		}
		if seenIngredients[ing.ID] {
			return nil, nil, ErrDuplicateIngredient
		}
		seenIngredients[ing.ID] = true
		ingredientIDs = append(ingredientIDs, ing.ID)
	}
	found, err := s.ingredientRepo.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(found) != len(ingredientIDs) {
		return nil, nil, ErrUnknownIngredient
	}

	if len(in.TagIDs) == 0 {
		return nil, nil, ErrNoTags
	}
	seenTags := make(map[int64]bool, len(in.TagIDs))
	for _, id := range in.TagIDs {
		if seenTags[id] {
			return nil, nil, ErrDuplicateTag
		}
		seenTags[id] = true
	}
	tags, err := s.tagRepo.GetByIDs(ctx, in.TagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(in.TagIDs) {
		return nil, nil, ErrUnknownTag
	}

	rows := make([]models.IngredientRecipe, 0, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		rows = append(rows, models.IngredientRecipe{
			IngredientID: ing.ID,
			Amount:       ing.Amount,
		})
	}
	return rows, tags, nil
}

func (s *recipeService) annotateOne(ctx context.Context, viewerID string, recipe *models.Recipe) (*RecipeDetail, error) {
	details, err := s.annotate(ctx, viewerID, []models.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// annotate computes the viewer's is_favorited / is_in_shopping_cart flags and
// whether the viewer follows each author. Anonymous viewers get all-false.
func (s *recipeService) annotate(ctx context.Context, viewerID string, recipes []models.Recipe) ([]RecipeDetail, error) {
	details := make([]RecipeDetail, 0, len(recipes))
	if viewerID == "" {
		for _, r := range recipes {
			details = append(details, RecipeDetail{Recipe: r})
		}
		return details, nil
	}

	ids := make([]int64, 0, len(recipes))
	authorIDs := make([]string, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	favorited, err := s.favoriteRepo.RecipeIDSet(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	inCart, err := s.cartRepo.RecipeIDSet(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.subRepo.AuthorIDSet(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	for _, r := range recipes {
		details = append(details, RecipeDetail{
			Recipe:           r,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			AuthorSubscribed: subscribed[r.AuthorID],
		})
	}
	return details, nil
}
