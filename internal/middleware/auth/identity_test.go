package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mystore/storefront/internal/models"
	"github.com/mystore/storefront/internal/repo"
	"github.com/mystore/storefront/internal/service"
)

func newTestIdentity(t *testing.T) (*Identity, *repo.GormRepo) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Session{}))

	store := &repo.GormRepo{DB: db, SessionSecret: []byte("test-session-secret")}
	return &Identity{Auth: &service.AuthService{Repo: store}}, store
}

func resolveWith(t *testing.T, i *Identity, cookie *http.Cookie) *models.User {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/mystore/home", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	c := echo.New().NewContext(req, httptest.NewRecorder())

	var resolved *models.User
	handler := i.Resolve(func(c echo.Context) error {
		if v, ok := c.Get("user").(*models.User); ok {
			resolved = v
		}
		return nil
	})
	require.NoError(t, handler(c))
	return resolved
}

func TestResolve_ValidSession(t *testing.T) {
	t.Parallel()

	identity, store := newTestIdentity(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, &models.User{
		FullName: "John Doe",
		Username: "johndoe",
		Email:    "john@example.com",
		Role:     models.RoleUser,
	}, "user123456")
	require.NoError(t, err)

	token, err := store.CreateSession(ctx, user.ID)
	require.NoError(t, err)

	resolved := resolveWith(t, identity, &http.Cookie{Name: service.SessionCookie, Value: token})
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Empty(t, resolved.PasswordHash)
}

func TestResolve_AnonymousStillProceeds(t *testing.T) {
	t.Parallel()

	identity, _ := newTestIdentity(t)

	assert.Nil(t, resolveWith(t, identity, nil))
	assert.Nil(t, resolveWith(t, identity, &http.Cookie{Name: service.SessionCookie, Value: "bogus-token"}))
}
