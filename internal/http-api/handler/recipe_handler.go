package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/middleware"
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/repository"
	"recipehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	svc          service.RecipeService
	favoriteSvc  service.FavoriteService
	cartSvc      service.ShoppingCartService
	shortLinkSvc service.ShortLinkService
	pageSize     int
	maxPageSize  int
}

func NewRecipeHandler(
	svc service.RecipeService,
	favoriteSvc service.FavoriteService,
	cartSvc service.ShoppingCartService,
	shortLinkSvc service.ShortLinkService,
	pageSize, maxPageSize int,
) *RecipeHandler {
	return &RecipeHandler{
		svc:          svc,
		favoriteSvc:  favoriteSvc,
		cartSvc:      cartSvc,
		shortLinkSvc: shortLinkSvc,
		pageSize:     pageSize,
		maxPageSize:  maxPageSize,
	}
}

// RegisterRoutes mounts the recipe endpoints. Reads are public (with optional
// viewer identity for per-user flags), mutations require authentication.
func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired, authOptional gin.HandlerFunc) {
	rg.GET("/", authOptional, h.List)
	rg.POST("/", authRequired, h.Create)
	rg.GET("/download_shopping_cart", authRequired, h.DownloadShoppingCart)
	rg.GET("/:id", authOptional, h.Get)
	rg.PATCH("/:id", authRequired, h.Update)
	rg.DELETE("/:id", authRequired, h.Delete)
	rg.POST("/:id/favorite", authRequired, h.AddFavorite)
	rg.DELETE("/:id/favorite", authRequired, h.RemoveFavorite)
	rg.POST("/:id/shopping_cart", authRequired, h.AddToCart)
	rg.DELETE("/:id/shopping_cart", authRequired, h.RemoveFromCart)
	rg.GET("/:id/get-link", h.GetLink)
}

func (h *RecipeHandler) List(c *gin.Context) {
	viewerID := middleware.ViewerID(c)
	page, pageSize := parsePagination(c, h.pageSize, h.maxPageSize)

	filter := repository.RecipeFilter{
		AuthorID: c.Query("author"),
	}
	if tags := c.Query("tags"); tags != "" {
		filter.TagSlugs = strings.Split(tags, ",")
	}
	// viewer-scoped filters only make sense for authenticated requests
	if viewerID != "" {
		if c.Query("is_favorited") == "1" {
			filter.FavoritedBy = viewerID
		}
		if c.Query("is_in_shopping_cart") == "1" {
			filter.InCartOf = viewerID
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	details, total, err := h.svc.List(ctx, filter, page, pageSize, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]dto.RecipeResponse, 0, len(details))
	for _, d := range details {
		items = append(items, dto.RecipeFromDetail(d))
	}

	c.JSON(http.StatusOK, dto.RecipeListResponse{
		Items: items,
		Total: total,
	})
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	detail, err := h.svc.GetByID(ctx, id, middleware.ViewerID(c))
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RecipeFromDetail(*detail))
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req dto.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	detail, err := h.svc.Create(ctx, actorFromContext(c), req.ToInput())
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RecipeFromDetail(*detail))
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req dto.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	detail, err := h.svc.Update(ctx, actorFromContext(c), id, req.ToInput())
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RecipeFromDetail(*detail))
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, actorFromContext(c), id); err != nil {
		h.writeRecipeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddFavorite handles POST /recipes/:id/favorite
func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addInteraction(c, h.favoriteSvc.Add)
}

// RemoveFavorite handles DELETE /recipes/:id/favorite
func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeInteraction(c, h.favoriteSvc.Remove)
}

// AddToCart handles POST /recipes/:id/shopping_cart
func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addInteraction(c, h.cartSvc.Add)
}

// RemoveFromCart handles DELETE /recipes/:id/shopping_cart
func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeInteraction(c, h.cartSvc.Remove)
}

// addInteraction is the shared shape of the favorite/cart add toggles: 201
// with a compact recipe summary, 400 on a duplicate pair.
func (h *RecipeHandler) addInteraction(c *gin.Context, add func(context.Context, string, int64) (*models.Recipe, error)) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := add(ctx, middleware.ViewerID(c), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyFavorited), errors.Is(err, service.ErrAlreadyInCart):
			c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.RecipeSummaryFromModel(*recipe))
}

func (h *RecipeHandler) removeInteraction(c *gin.Context, remove func(context.Context, string, int64) error) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := remove(ctx, middleware.ViewerID(c), id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFavorited), errors.Is(err, service.ErrNotInCart):
			c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart handles GET /recipes/download_shopping_cart
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	report, err := h.cartSvc.ShoppingList(ctx, middleware.ViewerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

// GetLink handles GET /recipes/:id/get-link
func (h *RecipeHandler) GetLink(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	shortURL, err := h.shortLinkSvc.GetOrCreate(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ShortLinkResponse{ShortLink: shortURL})
}

func (h *RecipeHandler) writeRecipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotRecipeAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case isRecipeValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func isRecipeValidationError(err error) bool {
	for _, target := range []error{
		service.ErrNoIngredients,
		service.ErrDuplicateIngredient,
		service.ErrInvalidAmount,
		service.ErrUnknownIngredient,
		service.ErrNoTags,
		service.ErrDuplicateTag,
		service.ErrUnknownTag,
		service.ErrEmptyImage,
		service.ErrInvalidImage,
		service.ErrInvalidCookingTime,
		service.ErrEmptyName,
		service.ErrEmptyText,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// recipeID parses the :id route param, writing the 400 response itself.
func recipeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return 0, false
	}
	return id, true
}

// actorFromContext rebuilds the acting user from the token claims; enough for
// ownership and role checks without a database round trip.
func actorFromContext(c *gin.Context) *models.User {
	return &models.User{
		ID:   c.GetString("userID"),
		Role: c.GetString("role"),
	}
}
