package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"recipehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ShortLinkHandler struct {
	svc service.ShortLinkService
}

func NewShortLinkHandler(svc service.ShortLinkService) *ShortLinkHandler {
	return &ShortLinkHandler{svc: svc}
}

// RegisterRoutes mounts the public redirect endpoint outside the /api prefix.
func (h *ShortLinkHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/s/:token", h.Redirect)
}

// Redirect resolves a short token and bounces the client to the canonical
// recipe page.
func (h *ShortLinkHandler) Redirect(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	target, err := h.svc.Resolve(ctx, c.Param("token"))
	if err != nil {
		if errors.Is(err, service.ErrShortLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "short link not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, target)
}
