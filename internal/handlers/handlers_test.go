package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mystore/storefront/internal/assets"
	"github.com/mystore/storefront/internal/models"
	"github.com/mystore/storefront/internal/repo"
	"github.com/mystore/storefront/internal/service"
	"github.com/mystore/storefront/internal/transport"
)

type testEnv struct {
	e       *echo.Echo
	auth    *AuthHandler
	product *ProductHandler
	store   *repo.GormRepo
	catalog *service.CatalogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Session{}))

	store := &repo.GormRepo{DB: db, SessionSecret: []byte("test-session-secret")}
	authService := &service.AuthService{Repo: store}
	catalog := &service.CatalogService{
		Repo:   store,
		Assets: assets.NewResolver(t.TempDir()),
	}

	e := echo.New()
	e.Validator = transport.NewValidator()

	return &testEnv{
		e:       e,
		auth:    &AuthHandler{Auth: authService},
		product: &ProductHandler{Catalog: catalog},
		store:   store,
		catalog: catalog,
	}
}

func (env *testEnv) jsonRequest(method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}

func (env *testEnv) formRequest(method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}

// multipartRequest builds a product form submission with an optional file part.
func (env *testEnv) multipartRequest(t *testing.T, target string, fields map[string]string, filename string, content []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}

func asAdmin(c echo.Context) {
	c.Set("user", &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin})
}

func asUser(c echo.Context) {
	c.Set("user", &models.User{ID: 2, Username: "johndoe", Role: models.RoleUser})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
