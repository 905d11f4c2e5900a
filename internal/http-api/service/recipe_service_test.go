package service

import (
	"context"
	"testing"

	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recipeFixture struct {
	db      *gorm.DB
	svc     RecipeService
	images  *fakeImageStore
	author  *models.User
	flour   *models.Ingredient
	eggs    *models.Ingredient
	dinner  *models.Tag
	dessert *models.Tag
}

func newRecipeFixture(t *testing.T) *recipeFixture {
	t.Helper()

	db := openTestDB(t)
	images := &fakeImageStore{}
	svc := NewRecipeService(
		repository.NewRecipeRepo(db),
		repository.NewIngredientRepo(db),
		repository.NewTagRepo(db),
		repository.NewFavoriteRepository(db),
		repository.NewShoppingCartRepository(db),
		repository.NewSubscriptionRepository(db),
		images,
	)

	return &recipeFixture{
		db:      db,
		svc:     svc,
		images:  images,
		author:  seedUser(t, db, "chef_anna"),
		flour:   seedIngredient(t, db, "flour", "g"),
		eggs:    seedIngredient(t, db, "eggs", "pcs"),
		dinner:  seedTag(t, db, "Dinner", "dinner"),
		dessert: seedTag(t, db, "Dessert", "dessert"),
	}
}

func (f *recipeFixture) validInput() RecipeInput {
	return RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Image:       "data:image/png;base64,aGVsbG8=",
		Ingredients: []IngredientAmount{
			{ID: f.flour.ID, Amount: 200},
			{ID: f.eggs.ID, Amount: 2},
		},
		TagIDs: []int64{f.dinner.ID},
	}
}

func TestRecipeCreate_Success(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	detail, err := f.svc.Create(ctx, f.author, f.validInput())
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", detail.Recipe.Name)
	assert.Equal(t, f.author.ID, detail.Recipe.AuthorID)
	assert.NotZero(t, detail.Recipe.ID)
	assert.NotEmpty(t, detail.Recipe.Image)
	require.NotNil(t, detail.Recipe.Author)
	assert.Equal(t, "chef_anna", detail.Recipe.Author.Username)
	require.Len(t, detail.Recipe.RecipeIngredients, 2)
	require.Len(t, detail.Recipe.Tags, 1)
	assert.Equal(t, "dinner", detail.Recipe.Tags[0].Slug)
	assert.False(t, detail.IsFavorited)
	assert.False(t, detail.IsInShoppingCart)
}

func TestRecipeCreate_Validation(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*RecipeInput)
		wantErr error
	}{
		{"empty name", func(in *RecipeInput) { in.Name = "  " }, ErrEmptyName},
		{"empty text", func(in *RecipeInput) { in.Text = "" }, ErrEmptyText},
		{"zero cooking time", func(in *RecipeInput) { in.CookingTime = 0 }, ErrInvalidCookingTime},
		{"no ingredients", func(in *RecipeInput) { in.Ingredients = nil }, ErrNoIngredients},
		{"zero amount", func(in *RecipeInput) { in.Ingredients[0].Amount = 0 }, ErrInvalidAmount},
		{"duplicate ingredient", func(in *RecipeInput) {
			in.Ingredients = append(in.Ingredients, IngredientAmount{ID: f.flour.ID, Amount: 50})
		}, ErrDuplicateIngredient},
		{"unknown ingredient", func(in *RecipeInput) {
			in.Ingredients[0].ID = 9999
		}, ErrUnknownIngredient},
		{"no tags", func(in *RecipeInput) { in.TagIDs = nil }, ErrNoTags},
		{"duplicate tag", func(in *RecipeInput) {
			in.TagIDs = []int64{f.dinner.ID, f.dinner.ID}
		}, ErrDuplicateTag},
		{"unknown tag", func(in *RecipeInput) { in.TagIDs = []int64{9999} }, ErrUnknownTag},
		{"missing image", func(in *RecipeInput) { in.Image = "" }, ErrEmptyImage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := f.validInput()
			tc.mutate(&in)
			_, err := f.svc.Create(ctx, f.author, in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// nothing should have been written by any rejected payload
	var count int64
	require.NoError(t, f.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecipeCreate_BadImage(t *testing.T) {
	f := newRecipeFixture(t)
	f.images.failure = ErrInvalidImage

	in := f.validInput()
	in.Image = "definitely not a data uri"
	_, err := f.svc.Create(context.Background(), f.author, in)
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestRecipeUpdate_ReplacesIngredientsAndTags(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.author, f.validInput())
	require.NoError(t, err)

	in := f.validInput()
	in.Name = "Thin pancakes"
	in.Image = "" // keep the current image
	in.Ingredients = []IngredientAmount{{ID: f.eggs.ID, Amount: 5}}
	in.TagIDs = []int64{f.dessert.ID}

	updated, err := f.svc.Update(ctx, f.author, created.Recipe.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "Thin pancakes", updated.Recipe.Name)
	assert.Equal(t, created.Recipe.Image, updated.Recipe.Image)
	require.Len(t, updated.Recipe.RecipeIngredients, 1)
	assert.Equal(t, f.eggs.ID, updated.Recipe.RecipeIngredients[0].IngredientID)
	assert.Equal(t, 5, updated.Recipe.RecipeIngredients[0].Amount)
	require.Len(t, updated.Recipe.Tags, 1)
	assert.Equal(t, "dessert", updated.Recipe.Tags[0].Slug)

	// the replaced ingredient rows are gone, not orphaned
	var rows int64
	require.NoError(t, f.db.Model(&models.IngredientRecipe{}).
		Where("recipe_id = ?", created.Recipe.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestRecipeUpdate_OnlyAuthorOrAdmin(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.author, f.validInput())
	require.NoError(t, err)

	stranger := seedUser(t, f.db, "stranger")
	in := f.validInput()
	in.Image = ""

	_, err = f.svc.Update(ctx, stranger, created.Recipe.ID, in)
	assert.ErrorIs(t, err, ErrNotRecipeAuthor)

	admin := seedAdmin(t, f.db, "moderator")
	_, err = f.svc.Update(ctx, admin, created.Recipe.ID, in)
	assert.NoError(t, err)
}

func TestRecipeDelete(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.author, f.validInput())
	require.NoError(t, err)

	stranger := seedUser(t, f.db, "stranger")
	assert.ErrorIs(t, f.svc.Delete(ctx, stranger, created.Recipe.ID), ErrNotRecipeAuthor)

	require.NoError(t, f.svc.Delete(ctx, f.author, created.Recipe.ID))
	assert.Contains(t, f.images.removed, created.Recipe.Image)

	_, err = f.svc.GetByID(ctx, created.Recipe.ID, "")
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.author, created.Recipe.ID), ErrRecipeNotFound)
}

func TestRecipeList_ViewerFlags(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.author, f.validInput())
	require.NoError(t, err)

	viewer := seedUser(t, f.db, "viewer")
	favoriteRepo := repository.NewFavoriteRepository(f.db)
	subRepo := repository.NewSubscriptionRepository(f.db)
	require.NoError(t, favoriteRepo.Add(ctx, viewer.ID, created.Recipe.ID))
	require.NoError(t, subRepo.Add(ctx, viewer.ID, f.author.ID))

	details, total, err := f.svc.List(ctx, repository.RecipeFilter{}, 1, 10, viewer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, details, 1)
	assert.True(t, details[0].IsFavorited)
	assert.False(t, details[0].IsInShoppingCart)
	assert.True(t, details[0].AuthorSubscribed)

	// anonymous viewers get all-false flags
	details, _, err = f.svc.List(ctx, repository.RecipeFilter{}, 1, 10, "")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.False(t, details[0].IsFavorited)
	assert.False(t, details[0].AuthorSubscribed)
}

func TestRecipeList_Filters(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.author, f.validInput())
	require.NoError(t, err)

	other := seedUser(t, f.db, "chef_omar")
	in := f.validInput()
	in.Name = "Cake"
	in.TagIDs = []int64{f.dessert.ID}
	second, err := f.svc.Create(ctx, other, in)
	require.NoError(t, err)

	details, total, err := f.svc.List(ctx, repository.RecipeFilter{TagSlugs: []string{"dessert"}}, 1, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, details, 1)
	assert.Equal(t, second.Recipe.ID, details[0].Recipe.ID)

	details, total, err = f.svc.List(ctx, repository.RecipeFilter{AuthorID: f.author.ID}, 1, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, details, 1)
	assert.Equal(t, first.Recipe.ID, details[0].Recipe.ID)

	viewer := seedUser(t, f.db, "viewer")
	cartRepo := repository.NewShoppingCartRepository(f.db)
	require.NoError(t, cartRepo.Add(ctx, viewer.ID, second.Recipe.ID))

	details, total, err = f.svc.List(ctx, repository.RecipeFilter{InCartOf: viewer.ID}, 1, 10, viewer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, details, 1)
	assert.Equal(t, second.Recipe.ID, details[0].Recipe.ID)
	assert.True(t, details[0].IsInShoppingCart)
}
