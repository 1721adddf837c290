package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mystore/storefront/internal/domain"
	"github.com/mystore/storefront/internal/hash"
	"github.com/mystore/storefront/internal/models"
)

// FindByNaturalKey looks a user up by username or email. Used by the seeder
// to decide presence; a miss is not an error.
func (r *GormRepo) FindByNaturalKey(ctx context.Context, username, email string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.PasswordHash = ""
	return &user, nil
}

func (r *GormRepo) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.PasswordHash = ""
	return &user, nil
}

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.PasswordHash = ""
	return &user, nil
}

// FindByEmailWithCredential is the only read path that returns the password
// hash. Login verification goes through here, nothing else should.
func (r *GormRepo) FindByEmailWithCredential(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User, plainPassword string) (*models.User, error) {
	if !user.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, user.Role)
	}

	pwHash, err := hash.HashPassword(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("cannot hash password: %w", err)
	}
	user.PasswordHash = pwHash

	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrUserAlreadyExist
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	created := *user
	created.PasswordHash = ""
	return &created, nil
}

func (r *GormRepo) VerifyPassword(plain, pwHash string) bool {
	return hash.CheckPassword(pwHash, plain)
}
