package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/shopspring/decimal"

	"github.com/mystore/storefront/internal/assets"
	"github.com/mystore/storefront/internal/domain"
	"github.com/mystore/storefront/internal/logging"
	"github.com/mystore/storefront/internal/models"
	"github.com/mystore/storefront/internal/mykafka"
	"github.com/mystore/storefront/internal/repo"
	"github.com/mystore/storefront/internal/transport"
)

// CatalogService orchestrates catalog mutations: authorize, resolve the
// image asset, apply to the store, then fan out events and index updates.
// Every mutation entry point goes through here; handlers never touch the
// repo directly.
type CatalogService struct {
	Repo     *repo.GormRepo
	Assets   *assets.Resolver
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

type CreateProductInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
	ImageURL    string
	Upload      *assets.Upload
}

type EditProductInput struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
	ImageURL    string
	Upload      *assets.Upload
}

func (s *CatalogService) authorize(actor *models.User) error {
	if actor == nil || actor.Role != models.RoleAdmin {
		return domain.ErrDenied
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, actor *models.User, in CreateProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	if err := s.authorize(actor); err != nil {
		l.Warn("create_product_denied")
		return nil, err
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	image, err := s.Assets.Resolve(in.Upload, in.ImageURL, false)
	if err != nil {
		l.Warn("create_product_failed", "reason", "asset rejected", "error", err)
		return nil, err
	}

	prod := &models.Product{
		Name:        in.Name,
		Price:       in.Price,
		Image:       image,
		Description: in.Description,
	}
	created, err := s.Repo.CreateProduct(ctx, prod)
	if err != nil {
		if in.Upload != nil {
			s.Assets.Remove(image)
		}
		l.Error("create_product_failed", "reason", "store write failed", "error", err)
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_created",
		"productID": created.ID,
		"name":      created.Name,
	})
	s.indexProduct(ctx, created)

	l.Info("create_product_success", "productID", created.ID)
	return created, nil
}

func (s *CatalogService) EditProduct(ctx context.Context, actor *models.User, id uint, in EditProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.edit_product", "productID", id)

	if err := s.authorize(actor); err != nil {
		l.Warn("edit_product_denied")
		return nil, err
	}
	if err := validateEdit(in); err != nil {
		return nil, err
	}

	image, err := s.Assets.Resolve(in.Upload, in.ImageURL, true)
	if err != nil {
		l.Warn("edit_product_failed", "reason", "asset rejected", "error", err)
		return nil, err
	}

	patch := transport.PatchProductRequest{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
	}
	if image != "" {
		patch.Image = &image
	}

	updated, err := s.Repo.UpdateProduct(ctx, id, patch)
	if err != nil {
		if in.Upload != nil {
			s.Assets.Remove(image)
		}
		l.Warn("edit_product_failed", "reason", "store write failed", "error", err)
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_updated",
		"productID": updated.ID,
		"name":      updated.Name,
	})
	s.indexProduct(ctx, updated)

	l.Info("edit_product_success")
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actor *models.User, id uint) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_product", "productID", id)

	if err := s.authorize(actor); err != nil {
		l.Warn("delete_product_denied")
		return err
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		l.Warn("delete_product_failed", "error", err)
		return err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	s.deindexProduct(ctx, id)

	l.Info("delete_product_success")
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProductByID(ctx, id)
}

func (s *CatalogService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetAllProducts(ctx)
}

func (s *CatalogService) ListProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func validateCreate(in CreateProductInput) error {
	if in.Name == "" || len(in.Name) > 100 {
		return fmt.Errorf("%w: name must be 1-100 characters", domain.ErrValidation)
	}
	if in.Price.Sign() < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}
	if in.Description == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	return nil
}

func validateEdit(in EditProductInput) error {
	if in.Name != nil && (*in.Name == "" || len(*in.Name) > 100) {
		return fmt.Errorf("%w: name must be 1-100 characters", domain.ErrValidation)
	}
	if in.Price != nil && in.Price.Sign() < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}
	if in.Description != nil && *in.Description == "" {
		return fmt.Errorf("%w: description cannot be empty", domain.ErrValidation)
	}
	return nil
}

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	if s.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}

// indexProduct mirrors the product into the search index, best effort.
func (s *CatalogService) indexProduct(ctx context.Context, prod *models.Product) {
	if s.ES == nil {
		return
	}
	l := logging.FromContext(ctx)

	data, err := json.Marshal(prod)
	if err != nil {
		l.Error("es_index_error", "error", err)
		return
	}

	res, err := s.ES.Index(
		s.Index,
		bytes.NewReader(data),
		s.ES.Index.WithDocumentID(strconv.FormatUint(uint64(prod.ID), 10)),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		l.Error("es_index_error", "productID", prod.ID, "error", err)
		return
	}
	res.Body.Close()
}

func (s *CatalogService) deindexProduct(ctx context.Context, id uint) {
	if s.ES == nil {
		return
	}

	res, err := s.ES.Delete(
		s.Index,
		strconv.FormatUint(uint64(id), 10),
		s.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		logging.FromContext(ctx).Error("es_deindex_error", "productID", id, "error", err)
		return
	}
	res.Body.Close()
}
