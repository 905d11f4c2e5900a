package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipehub/database"
	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/handler"
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// The tag and ingredient handlers sit directly on their repositories, so
// these tests run against a real in-memory database.
func openHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func setupReferenceRouter(t *testing.T, role string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := openHandlerDB(t)
	r := gin.New()

	identity := asUser("33333333-3333-3333-3333-333333333333", role)
	adminGate := func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
			c.Abort()
			return
		}
		c.Next()
	}

	handler.NewTagHandler(repository.NewTagRepo(db)).
		RegisterRoutes(r.Group("/api/tags"), identity, adminGate)
	handler.NewIngredientHandler(repository.NewIngredientRepo(db)).
		RegisterRoutes(r.Group("/api/ingredients"), identity, adminGate)
	return r, db
}

func TestTagList(t *testing.T) {
	r, db := setupReferenceRouter(t, "user")
	require.NoError(t, db.Create(&models.Tag{Name: "Dinner", Slug: "dinner"}).Error)
	require.NoError(t, db.Create(&models.Tag{Name: "Breakfast", Slug: "breakfast"}).Error)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/tags/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body []dto.TagResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	// sorted by name
	assert.Equal(t, "Breakfast", body[0].Name)
}

func TestTagGet_NotFound(t *testing.T) {
	r, _ := setupReferenceRouter(t, "user")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/tags/99", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTagCreate_AdminOnly(t *testing.T) {
	r, _ := setupReferenceRouter(t, "user")

	w := postJSON(r, "/api/tags/", dto.CreateTagRequest{Name: "Dinner", Slug: "dinner"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin, _ := setupReferenceRouter(t, "admin")
	w = postJSON(admin, "/api/tags/", dto.CreateTagRequest{Name: "Dinner", Slug: "dinner"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// duplicate slug
	w = postJSON(admin, "/api/tags/", dto.CreateTagRequest{Name: "Supper", Slug: "dinner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngredientList_PrefixFilter(t *testing.T) {
	r, db := setupReferenceRouter(t, "user")
	require.NoError(t, db.Create(&models.Ingredient{Name: "salt", MeasurementUnit: "g"}).Error)
	require.NoError(t, db.Create(&models.Ingredient{Name: "salmon", MeasurementUnit: "g"}).Error)
	require.NoError(t, db.Create(&models.Ingredient{Name: "pepper", MeasurementUnit: "g"}).Error)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/ingredients/?name=sal", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body []dto.IngredientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 2)
}

func TestIngredientCreate(t *testing.T) {
	admin, _ := setupReferenceRouter(t, "admin")

	w := postJSON(admin, "/api/ingredients/", dto.CreateIngredientRequest{
		Name:            "flour",
		MeasurementUnit: "g",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var body dto.IngredientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotZero(t, body.ID)
	assert.Equal(t, "flour", body.Name)
}
