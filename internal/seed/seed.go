package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mystore/storefront/internal/logging"
	"github.com/mystore/storefront/internal/models"
	"github.com/mystore/storefront/internal/repo"
)

type SeedUser struct {
	FullName string
	Username string
	Email    string
	Password string
	Role     models.Role
}

type SeedProduct struct {
	Name        string
	Price       string
	Image       string
	Description string
}

var SeedUsers = []SeedUser{
	{
		FullName: "Admin User",
		Username: "admin",
		Email:    "admin@mystore.com",
		Password: "admin123456",
		Role:     models.RoleAdmin,
	},
	{
		FullName: "John Doe",
		Username: "johndoe",
		Email:    "john@example.com",
		Password: "user123456",
		Role:     models.RoleUser,
	},
}

var SeedProducts = []SeedProduct{
	{
		Name:        "Laptop",
		Price:       "999.99",
		Image:       "/images/laptop.jpg",
		Description: "A high-performance laptop suitable for all your computing needs.",
	},
	{
		Name:        "Smartphone",
		Price:       "599.99",
		Image:       "/images/smartphone.jpg",
		Description: "A latest model smartphone with all the modern features.",
	},
	{
		Name:        "Headphones",
		Price:       "199.99",
		Image:       "/images/headphones.jpg",
		Description: "Noise-cancelling headphones for an immersive audio experience.",
	},
	{
		Name:        "Smartwatch",
		Price:       "299.99",
		Image:       "/images/smartwatch.jpg",
		Description: "A smartwatch with fitness tracking and notification features.",
	},
}

type Seeder struct {
	Repo *repo.GormRepo
}

// Run creates the baseline users and products that are not present yet,
// keyed by username/email for users and name for products. Present records
// are left untouched, so repeated runs are no-ops.
func (s *Seeder) Run(ctx context.Context) error {
	var errs []error

	l := logging.FromContext(ctx).With("svc", "seed")

	for _, u := range SeedUsers {
		existing, err := s.Repo.FindByNaturalKey(ctx, u.Username, u.Email)
		if err != nil {
			errs = append(errs, fmt.Errorf("seed user %s: %w", u.Username, err))
			continue
		}
		if existing != nil {
			l.Info("seed_user_skipped", "username", u.Username)
			continue
		}

		user := models.User{
			FullName: u.FullName,
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
		}
		if _, err := s.Repo.CreateUser(ctx, &user, u.Password); err != nil {
			errs = append(errs, fmt.Errorf("seed user %s: %w", u.Username, err))
			continue
		}
		l.Info("seed_user_created", "username", u.Username, "role", string(u.Role))
	}

	for _, p := range SeedProducts {
		existing, err := s.Repo.FindProductByName(ctx, p.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("seed product %s: %w", p.Name, err))
			continue
		}
		if existing != nil {
			l.Info("seed_product_skipped", "name", p.Name)
			continue
		}

		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			errs = append(errs, fmt.Errorf("seed product %s: bad price: %w", p.Name, err))
			continue
		}
		prod := models.Product{
			Name:        p.Name,
			Price:       price,
			Image:       p.Image,
			Description: p.Description,
		}
		if _, err := s.Repo.CreateProduct(ctx, &prod); err != nil {
			errs = append(errs, fmt.Errorf("seed product %s: %w", p.Name, err))
			continue
		}
		l.Info("seed_product_created", "name", p.Name)
	}

	return errors.Join(errs...)
}
