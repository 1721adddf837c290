package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/mystore/storefront/internal/service"
)

type Identity struct {
	Auth *service.AuthService
}

// Resolve maps the session cookie to a user and stores it in the request
// context. A missing, malformed or stale cookie resolves to anonymous; the
// request always proceeds.
func (i *Identity) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := ""
		if ck, err := c.Cookie(service.SessionCookie); err == nil {
			token = ck.Value
		}
		if user := i.Auth.Identify(c.Request().Context(), token); user != nil {
			c.Set("user", user)
		}
		return next(c)
	}
}
