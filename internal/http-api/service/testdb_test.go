package service

import (
	"fmt"
	"testing"

	"recipehub/database"
	"recipehub/internal/http-api/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB gives each test a fresh in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// in-memory sqlite is per-connection, so keep the pool at one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "irrelevant-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	admin := seedUser(t, db, username)
	require.NoError(t, db.Model(admin).Update("role", "admin").Error)
	admin.Role = "admin"
	return admin
}

func seedIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()

	ing := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ing).Error)
	return ing
}

func seedTag(t *testing.T, db *gorm.DB, name, slug string) *models.Tag {
	t.Helper()

	tag := &models.Tag{Name: name, Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// fakeImageStore satisfies ImageStore without touching the filesystem.
type fakeImageStore struct {
	saves   int
	removed []string
	failure error
}

func (f *fakeImageStore) SaveDataURI(uri string) (string, error) {
	if f.failure != nil {
		return "", f.failure
	}
	f.saves++
	return fmt.Sprintf("media/img-%d.png", f.saves), nil
}

func (f *fakeImageStore) Remove(relPath string) error {
	f.removed = append(f.removed, relPath)
	return nil
}
