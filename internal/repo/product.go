package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mystore/storefront/internal/domain"
	"github.com/mystore/storefront/internal/models"
	"github.com/mystore/storefront/internal/transport"
)

// CreateProduct relies on the unique index on name; the database is the
// arbiter of uniqueness, there is no read-then-write pre-check to race.
func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return prod, nil
}

func (r *GormRepo) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("db error: %w", err)
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, fmt.Errorf("db error: %w", err)
	}

	return total, items, nil
}

// GetProductByID returns (nil, nil) on a miss so read paths stay total;
// callers check for the nil sentinel.
func (r *GormRepo) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&prod).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &prod, nil
}

func (r *GormRepo) FindProductByName(ctx context.Context, name string) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&prod).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &prod, nil
}

// UpdateProduct merges the supplied fields into the stored record; absent
// fields keep their prior values.
func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, patch transport.PatchProductRequest) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if patch.Name != nil {
		prod.Name = *patch.Name
	}
	if patch.Price != nil {
		prod.Price = *patch.Price
	}
	if patch.Image != nil {
		prod.Image = *patch.Image
	}
	if patch.Description != nil {
		prod.Description = *patch.Description
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("db error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
