package repo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mystore/storefront/internal/domain"
	"github.com/mystore/storefront/internal/models"
	"github.com/mystore/storefront/internal/transport"
)

func testProduct(name string) *models.Product {
	return &models.Product{
		Name:        name,
		Price:       decimal.RequireFromString("999.99"),
		Image:       "/images/laptop.jpg",
		Description: "A high-performance laptop suitable for all your computing needs.",
	}
}

func TestCreateProduct_AssignsIDAndCreatedAt(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.CreateProduct(ctx, testProduct("Laptop"))
	require.NoError(t, err)

	assert.Greater(t, created.ID, uint(0))
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, created.Price.Equal(decimal.RequireFromString("999.99")))
}

func TestCreateProduct_DuplicateName(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.CreateProduct(ctx, testProduct("Laptop"))
	require.NoError(t, err)

	_, err = r.CreateProduct(ctx, testProduct("Laptop"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	total, _, err := r.GetProducts(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestGetProductByID_MissReturnsNil(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	prod, err := r.GetProductByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, prod)
}

func TestUpdateProduct_EmptyPatchIsNoOp(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.CreateProduct(ctx, testProduct("Laptop"))
	require.NoError(t, err)

	updated, err := r.UpdateProduct(ctx, created.ID, transport.PatchProductRequest{})
	require.NoError(t, err)

	assert.Equal(t, created.Name, updated.Name)
	assert.True(t, created.Price.Equal(updated.Price))
	assert.Equal(t, created.Image, updated.Image)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestUpdateProduct_PriceOnly(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.CreateProduct(ctx, testProduct("Laptop"))
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("899.99")
	updated, err := r.UpdateProduct(ctx, created.ID, transport.PatchProductRequest{Price: &newPrice})
	require.NoError(t, err)

	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Image, updated.Image)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestUpdateProduct_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	name := "Ghost"
	_, err := r.UpdateProduct(context.Background(), 404, transport.PatchProductRequest{Name: &name})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProduct_ThenGone(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.CreateProduct(ctx, testProduct("Laptop"))
	require.NoError(t, err)

	require.NoError(t, r.DeleteProduct(ctx, created.ID))

	prod, err := r.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, prod)

	err = r.DeleteProduct(ctx, created.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindProductByName(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.CreateProduct(ctx, testProduct("Laptop"))
	require.NoError(t, err)

	found, err := r.FindProductByName(ctx, "Laptop")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Laptop", found.Name)

	missing, err := r.FindProductByName(ctx, "Toaster")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
