package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mystore/storefront/internal/assets"
	"github.com/mystore/storefront/internal/models"
	"github.com/mystore/storefront/internal/repo"
)

func newTestStore(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Session{}))

	return &repo.GormRepo{DB: db, SessionSecret: []byte("test-session-secret")}
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{Repo: newTestStore(t)}
}

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	return &CatalogService{
		Repo:   newTestStore(t),
		Assets: assets.NewResolver(t.TempDir()),
	}
}
