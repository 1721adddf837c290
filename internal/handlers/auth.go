package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mystore/storefront/internal/domain"
	"github.com/mystore/storefront/internal/logging"
	"github.com/mystore/storefront/internal/models"
	"github.com/mystore/storefront/internal/repo"
	"github.com/mystore/storefront/internal/service"
	"github.com/mystore/storefront/internal/transport"
)

type AuthHandler struct {
	Auth *service.AuthService
}

func CreateCookie(name string, value string, path string, expTime time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expTime,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func DeleteCookie(name, path string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// currentUser returns the identity resolved by the session middleware, or
// nil for anonymous.
func currentUser(c echo.Context) *models.User {
	if v := c.Get("user"); v != nil {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// LoginPage and SignUpPage serve the form page data; the CSRF cookie is
// issued by the middleware on the way through.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user": currentUser(c)})
}

func (h *AuthHandler) SignUpPage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user": currentUser(c)})
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	var req transport.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusFound, "/mystore/sign-up?error=validation-failed")
	}
	if err := c.Validate(&req); err != nil {
		return c.Redirect(http.StatusFound, "/mystore/sign-up?error=validation-failed")
	}

	if _, err := h.Auth.SignUp(c.Request().Context(), req); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExist) {
			return c.Redirect(http.StatusFound, "/mystore/sign-up?error=user-exists")
		}
		if errors.Is(err, domain.ErrValidation) {
			return c.Redirect(http.StatusFound, "/mystore/sign-up?error=validation-failed")
		}
		return c.Redirect(http.StatusFound, "/mystore/sign-up?error=signup-failed")
	}

	return c.Redirect(http.StatusFound, "/mystore/login")
}

// Login establishes a session. Every failure path lands on the same
// redirect: the response never tells an unknown email from a wrong password.
func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusFound, "/mystore/login?error=invalid-credentials")
	}
	if err := c.Validate(&req); err != nil {
		return c.Redirect(http.StatusFound, "/mystore/login?error=invalid-credentials")
	}

	token, _, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return c.Redirect(http.StatusFound, "/mystore/login?error=invalid-credentials")
	}

	c.SetCookie(CreateCookie(service.SessionCookie, token, "/", time.Now().Add(repo.SessionTTL)))
	return c.Redirect(http.StatusFound, "/mystore/home")
}

// LogOut invalidates the server-side session. A failure there is logged but
// never blocks clearing the cookie or the redirect.
func (h *AuthHandler) LogOut(c echo.Context) error {
	ctx := c.Request().Context()

	if ck, err := c.Cookie(service.SessionCookie); err == nil {
		if err := h.Auth.LogOut(ctx, ck.Value); err != nil {
			logging.FromContext(ctx).Error("logout_error", "error", err)
		}
	}

	c.SetCookie(DeleteCookie(service.SessionCookie, "/"))
	return c.Redirect(http.StatusFound, "/mystore/home")
}
