package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/repository"

	"github.com/gin-gonic/gin"
)

type IngredientHandler struct {
	repo *repository.IngredientRepo
}

func NewIngredientHandler(repo *repository.IngredientRepo) *IngredientHandler {
	return &IngredientHandler{repo: repo}
}

func (h *IngredientHandler) RegisterRoutes(rg *gin.RouterGroup, adminOnly ...gin.HandlerFunc) {
	rg.GET("/", h.List)
	rg.GET("/:id", h.Get)

	create := append(adminOnly, h.Create)
	rg.POST("/", create...)
}

// List handles GET /ingredients with an optional ?name= prefix filter used by
// the recipe form autocomplete.
func (h *IngredientHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ingredients, err := h.repo.GetAll(ctx, c.Query("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]dto.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		items = append(items, dto.IngredientFromModel(ing))
	}
	c.JSON(http.StatusOK, items)
}

func (h *IngredientHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ingredient, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.IngredientFromModel(*ingredient))
}

func (h *IngredientHandler) Create(c *gin.Context) {
	var req dto.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ingredient := models.Ingredient{Name: req.Name, MeasurementUnit: req.MeasurementUnit}
	if err := h.repo.Create(ctx, &ingredient); err != nil {
		if repository.IsDuplicate(err) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "ingredient already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.IngredientFromModel(ingredient))
}
