package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parsePagination reads ?page= and ?limit=, clamping to sane bounds.
func parsePagination(c *gin.Context, defaultSize, maxSize int) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSize)))
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}

// parseRecipesLimit reads the optional ?recipes_limit= cap on embedded recipe
// lists. Unparseable values mean "no limit".
func parseRecipesLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
