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

type TagHandler struct {
	repo *repository.TagRepo
}

func NewTagHandler(repo *repository.TagRepo) *TagHandler {
	return &TagHandler{repo: repo}
}

// RegisterRoutes mounts the tag endpoints. Reads are public; creation is
// restricted to administrators.
func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup, adminOnly ...gin.HandlerFunc) {
	rg.GET("/", h.List)
	rg.GET("/:id", h.Get)

	create := append(adminOnly, h.Create)
	rg.POST("/", create...)
}

func (h *TagHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tags, err := h.repo.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]dto.TagResponse, 0, len(tags))
	for _, t := range tags {
		items = append(items, dto.TagFromModel(t))
	}
	c.JSON(http.StatusOK, items)
}

func (h *TagHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tag, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.TagFromModel(*tag))
}

func (h *TagHandler) Create(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tag := models.Tag{Name: req.Name, Slug: req.Slug}
	if err := h.repo.Create(ctx, &tag); err != nil {
		if repository.IsDuplicate(err) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "tag name or slug already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.TagFromModel(tag))
}
