package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/middleware"
	"recipehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc         service.UserService
	subSvc      service.SubscriptionService
	pageSize    int
	maxPageSize int
}

func NewUserHandler(svc service.UserService, subSvc service.SubscriptionService, pageSize, maxPageSize int) *UserHandler {
	return &UserHandler{
		svc:         svc,
		subSvc:      subSvc,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

// RegisterRoutes mounts the user and subscription endpoints. The static /me
// and /subscriptions routes coexist with the :id params; gin matches static
// segments first.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired, authOptional gin.HandlerFunc) {
	rg.GET("/", authOptional, h.List)
	rg.GET("/me", authRequired, h.Me)
	rg.PUT("/me/avatar", authRequired, h.SetAvatar)
	rg.DELETE("/me/avatar", authRequired, h.DeleteAvatar)
	rg.GET("/subscriptions", authRequired, h.Subscriptions)
	rg.GET("/:id", authOptional, h.Get)
	rg.POST("/:id/subscribe", authRequired, h.Subscribe)
	rg.DELETE("/:id/subscribe", authRequired, h.Unsubscribe)
}

func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c, h.pageSize, h.maxPageSize)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profiles, total, err := h.svc.List(ctx, page, pageSize, middleware.ViewerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]dto.UserResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, dto.UserFromProfile(p))
	}

	c.JSON(http.StatusOK, dto.UserListResponse{Items: items, Total: total})
}

func (h *UserHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.svc.GetByID(ctx, c.Param("id"), middleware.ViewerID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.UserFromProfile(*profile))
}

// Me returns the authenticated user's own profile.
func (h *UserHandler) Me(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	viewerID := middleware.ViewerID(c)
	profile, err := h.svc.GetByID(ctx, viewerID, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.UserFromProfile(*profile))
}

// SetAvatar handles PUT /users/me/avatar
func (h *UserHandler) SetAvatar(c *gin.Context) {
	var req dto.AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	path, err := h.svc.SetAvatar(ctx, middleware.ViewerID(c), req.Avatar)
	if err != nil {
		if errors.Is(err, service.ErrNoAvatar) || errors.Is(err, service.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.AvatarResponse{Avatar: path})
}

// DeleteAvatar handles DELETE /users/me/avatar
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.DeleteAvatar(ctx, middleware.ViewerID(c)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// Subscriptions handles GET /users/subscriptions
func (h *UserHandler) Subscriptions(c *gin.Context) {
	page, pageSize := parsePagination(c, h.pageSize, h.maxPageSize)
	recipesLimit := parseRecipesLimit(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profiles, total, err := h.subSvc.List(ctx, middleware.ViewerID(c), page, pageSize, recipesLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]dto.AuthorResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, dto.AuthorFromProfile(p))
	}

	c.JSON(http.StatusOK, dto.SubscriptionListResponse{Items: items, Total: total})
}

// Subscribe handles POST /users/:id/subscribe
func (h *UserHandler) Subscribe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.subSvc.Subscribe(ctx, middleware.ViewerID(c), c.Param("id"), parseRecipesLimit(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrSelfSubscription), errors.Is(err, service.ErrAlreadySubscribed):
			c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.AuthorFromProfile(*profile))
}

// Unsubscribe handles DELETE /users/:id/subscribe
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.subSvc.Unsubscribe(ctx, middleware.ViewerID(c), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotSubscribed):
			c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
