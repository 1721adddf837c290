package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mystore/storefront/internal/handlers"
	authmw "github.com/mystore/storefront/internal/middleware/auth"
	"github.com/mystore/storefront/internal/middleware/csrf"
	"github.com/mystore/storefront/internal/transport"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	SearchHandler  *handlers.SearchHandler
	Identity       *authmw.Identity
	UploadDir      string
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = transport.NewValidator()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/mystore/home")
	})
	e.Static("/images", d.UploadDir)

	store := e.Group("/mystore", d.Identity.Resolve)

	// Browser routes all pass through the CSRF middleware: any page GET
	// issues the double-submit cookie, so a form POST always has a token to
	// echo back. The JSON API group is wired without it.
	pages := store.Group("", csrf.Middleware(csrf.Config{}))

	pages.GET("", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/mystore/home")
	})
	pages.GET("/home", d.ProductHandler.Home)
	pages.GET("/product/:id", d.ProductHandler.ProductPage)
	pages.GET("/login", d.AuthHandler.LoginPage)
	pages.GET("/sign-up", d.AuthHandler.SignUpPage)
	pages.GET("/add-product", d.ProductHandler.AddProductPage)
	pages.GET("/edit-product/:id", d.ProductHandler.EditProductPage)
	pages.GET("/logout", d.AuthHandler.LogOut)

	// Form mutations: multipart payloads, redirect outcomes. The body limit
	// leaves headroom over the 5 MiB asset cap so the asset resolver is the
	// one reporting oversize uploads.
	forms := pages.Group("", middleware.BodyLimit("8M"))
	forms.POST("/signup", d.AuthHandler.SignUp)
	forms.POST("/login", d.AuthHandler.Login)
	forms.POST("/products/create", d.ProductHandler.CreateProductForm)
	forms.POST("/products/:id/update", d.ProductHandler.UpdateProductForm)
	forms.POST("/products/:id/delete", d.ProductHandler.DeleteProductForm)

	api := store.Group("/api")
	api.GET("/products", d.ProductHandler.ListProducts)
	api.GET("/products/:id", d.ProductHandler.GetProduct)
	api.POST("/products", d.ProductHandler.CreateProduct)
	api.POST("/products/:id", d.ProductHandler.UpdateProduct)
	api.POST("/products/:id/delete", d.ProductHandler.DeleteProduct)
	api.GET("/search", d.SearchHandler.Search)
}
