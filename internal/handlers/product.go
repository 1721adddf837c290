package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/mystore/storefront/internal/assets"
	"github.com/mystore/storefront/internal/domain"
	"github.com/mystore/storefront/internal/models"
	"github.com/mystore/storefront/internal/service"
	"github.com/mystore/storefront/internal/transport"
	"github.com/mystore/storefront/internal/util"
)

type ProductHandler struct {
	Catalog *service.CatalogService
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: id is not an integer", domain.ErrValidation)
	}
	return uint(id), nil
}

// apiError maps the error taxonomy to a status code and a stable kind the
// client can switch on.
func apiError(c echo.Context, err error) error {
	kind, code := "internal", http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrDenied):
		kind, code = "denied", http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		kind, code = "not_found", http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateName):
		kind, code = "duplicate_name", http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		kind, code = "validation_failed", http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidAsset):
		kind, code = "invalid_asset", http.StatusBadRequest
	case errors.Is(err, domain.ErrMissingAsset):
		kind, code = "missing_asset", http.StatusBadRequest
	case errors.Is(err, domain.ErrAssetTooLarge):
		kind, code = "asset_too_large", http.StatusRequestEntityTooLarge
	}
	return c.JSON(code, echo.Map{"error": kind})
}

// Home is the storefront landing data: the catalog plus whoever is logged in.
func (h *ProductHandler) Home(c echo.Context) error {
	products, err := h.Catalog.GetAllProducts(c.Request().Context())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"products": products,
		"user":     currentUser(c),
	})
}

func (h *ProductHandler) ProductPage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return apiError(c, err)
	}
	prod, err := h.Catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return apiError(c, err)
	}
	if prod == nil {
		return apiError(c, domain.ErrNotFound)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"product": prod,
		"user":    currentUser(c),
	})
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Catalog.ListProducts(c.Request().Context(), offset, limit)
	if err != nil {
		return apiError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return apiError(c, err)
	}
	prod, err := h.Catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return apiError(c, err)
	}
	if prod == nil {
		return apiError(c, domain.ErrNotFound)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return apiError(c, fmt.Errorf("%w: invalid body", domain.ErrValidation))
	}
	if err := c.Validate(&req); err != nil {
		return apiError(c, err)
	}

	in := service.CreateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.Image,
	}
	prod, err := h.Catalog.CreateProduct(c.Request().Context(), currentUser(c), in)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return apiError(c, err)
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return apiError(c, fmt.Errorf("%w: invalid body", domain.ErrValidation))
	}

	in := service.EditProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	}
	if req.Image != nil {
		in.ImageURL = *req.Image
	}

	prod, err := h.Catalog.EditProduct(c.Request().Context(), currentUser(c), id, in)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return apiError(c, err)
	}
	if err := h.Catalog.DeleteProduct(c.Request().Context(), currentUser(c), id); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

// AddProductPage is the admin-only product form page; everyone else is
// bounced home with the marker.
func (h *ProductHandler) AddProductPage(c echo.Context) error {
	u := currentUser(c)
	if u == nil || u.Role != models.RoleAdmin {
		return c.Redirect(http.StatusFound, "/mystore/home?error=admin-only")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

func (h *ProductHandler) EditProductPage(c echo.Context) error {
	u := currentUser(c)
	if u == nil || u.Role != models.RoleAdmin {
		return c.Redirect(http.StatusFound, "/mystore/home?error=admin-only")
	}

	id, err := parseID(c)
	if err != nil {
		return apiError(c, err)
	}
	prod, err := h.Catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return apiError(c, err)
	}
	if prod == nil {
		return apiError(c, domain.ErrNotFound)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"product": prod,
		"user":    u,
	})
}

// formUpload extracts the optional multipart image. A missing file part is
// not an error; the asset resolver decides what that means.
func formUpload(c echo.Context) (*assets.Upload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, func() {}, nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("cannot open upload: %w", err)
	}
	return &assets.Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Reader:   src,
	}, func() { src.Close() }, nil
}

// formErrorMarker translates an orchestrator error into the query marker the
// originating form shows.
func formErrorMarker(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingAsset):
		return "no-image"
	case errors.Is(err, domain.ErrInvalidAsset):
		return "invalid-image"
	case errors.Is(err, domain.ErrAssetTooLarge):
		return "image-too-large"
	case errors.Is(err, domain.ErrDuplicateName):
		return "duplicate-name"
	case errors.Is(err, domain.ErrValidation):
		return "validation-failed"
	}
	return ""
}

// CreateProductForm is the browser form entry point: multipart payload with
// an optional file, outcome reported as a redirect.
func (h *ProductHandler) CreateProductForm(c echo.Context) error {
	price, err := decimal.NewFromString(c.FormValue("price"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/mystore/add-product?error=validation-failed")
	}

	upload, cleanup, err := formUpload(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/mystore/add-product?error=create-failed")
	}
	defer cleanup()

	in := service.CreateProductInput{
		Name:        c.FormValue("name"),
		Price:       price,
		Description: c.FormValue("description"),
		ImageURL:    c.FormValue("imageUrl"),
		Upload:      upload,
	}

	if _, err := h.Catalog.CreateProduct(c.Request().Context(), currentUser(c), in); err != nil {
		if errors.Is(err, domain.ErrDenied) {
			return c.Redirect(http.StatusFound, "/mystore/home?error=admin-only")
		}
		marker := formErrorMarker(err)
		if marker == "" {
			marker = "create-failed"
		}
		return c.Redirect(http.StatusFound, "/mystore/add-product?error="+marker)
	}

	return c.Redirect(http.StatusFound, "/mystore/home")
}

func (h *ProductHandler) UpdateProductForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/mystore/home?error=update-failed")
	}
	editURL := fmt.Sprintf("/mystore/edit-product/%d", id)

	var in service.EditProductInput
	if v := c.FormValue("name"); v != "" {
		in.Name = &v
	}
	if v := c.FormValue("price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return c.Redirect(http.StatusFound, editURL+"?error=validation-failed")
		}
		in.Price = &price
	}
	if v := c.FormValue("description"); v != "" {
		in.Description = &v
	}
	in.ImageURL = c.FormValue("imageUrl")

	upload, cleanup, err := formUpload(c)
	if err != nil {
		return c.Redirect(http.StatusFound, editURL+"?error=update-failed")
	}
	defer cleanup()
	in.Upload = upload

	if _, err := h.Catalog.EditProduct(c.Request().Context(), currentUser(c), id, in); err != nil {
		if errors.Is(err, domain.ErrDenied) {
			return c.Redirect(http.StatusFound, "/mystore/home?error=admin-only")
		}
		marker := formErrorMarker(err)
		if marker == "" {
			marker = "update-failed"
		}
		return c.Redirect(http.StatusFound, editURL+"?error="+marker)
	}

	return c.Redirect(http.StatusFound, "/mystore/home")
}

func (h *ProductHandler) DeleteProductForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/mystore/home?error=delete-failed")
	}

	if err := h.Catalog.DeleteProduct(c.Request().Context(), currentUser(c), id); err != nil {
		if errors.Is(err, domain.ErrDenied) {
			return c.Redirect(http.StatusFound, "/mystore/home?error=admin-only")
		}
		return c.Redirect(http.StatusFound, "/mystore/home?error=delete-failed")
	}

	return c.Redirect(http.StatusFound, "/mystore/home")
}
