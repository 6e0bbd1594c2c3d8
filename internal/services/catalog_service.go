package services

import (
	"context"
	"errors"
	"log"

	"velora/internal/models"
	"velora/internal/repositories"
	"velora/pkg/storage"
)

// searchResultLimit caps how many rows a text search returns.
const searchResultLimit = 20

// CatalogService handles business logic related to the product catalog.
type CatalogService struct {
	repo  repositories.ProductRepository
	blobs storage.BlobStore
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository, blobs storage.BlobStore) *CatalogService {
	return &CatalogService{
		repo:  repo,
		blobs: blobs,
	}
}

// resolveImages fills the derived image URL fields from the blob store.
// A ref that no longer resolves leaves the URL empty rather than failing the read.
func (s *CatalogService) resolveImages(ctx context.Context, product *models.Product) {
	if product.OriginalImageRef != nil {
		url, err := s.blobs.ResolveURL(ctx, *product.OriginalImageRef)
		if err != nil {
			log.Printf("Failed to resolve original image for product %s: %v", product.ID, err)
		}
		product.OriginalImageURL = url
	}
	if product.OrdinaryImageRef != nil {
		url, err := s.blobs.ResolveURL(ctx, *product.OrdinaryImageRef)
		if err != nil {
			log.Printf("Failed to resolve ordinary image for product %s: %v", product.ID, err)
		}
		product.OrdinaryImageURL = url
	}
}

// ListProducts retrieves products matching the filter, with image URLs resolved.
func (s *CatalogService) ListProducts(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	if filter.Category != nil && !models.ValidCategory(*filter.Category) {
		return nil, ErrInvalidCategory
	}
	products, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	for i := range products {
		s.resolveImages(ctx, &products[i])
	}
	return products, nil
}

// GetProduct retrieves a single product with image URLs resolved.
// Absence is a valid result: a missing product returns (nil, nil), not an error.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s.resolveImages(ctx, product)
	return product, nil
}

// SearchProducts matches the term against product names, optionally narrowed
// by category, capped at searchResultLimit results.
func (s *CatalogService) SearchProducts(ctx context.Context, term string, category *models.Category) ([]models.Product, error) {
	if category != nil && !models.ValidCategory(*category) {
		return nil, ErrInvalidCategory
	}
	products, err := s.repo.Search(term, category, searchResultLimit)
	if err != nil {
		return nil, err
	}
	for i := range products {
		s.resolveImages(ctx, &products[i])
	}
	return products, nil
}

// CreateProduct creates a new catalog product. New products are always in
// stock regardless of what the caller supplied.
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if !models.ValidCategory(product.Category) {
		return ErrInvalidCategory
	}
	product.InStock = true
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.resolveImages(ctx, product)
	return nil
}

// UpdateProduct updates stock, flags, prices or copy on an existing product.
// The engagement and review rollups belong to their own mutations and are
// carried over from the stored row, never taken from the caller.
func (s *CatalogService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if !models.ValidCategory(product.Category) {
		return ErrInvalidCategory
	}
	existing, err := s.repo.GetByID(product.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	product.Views = existing.Views
	product.Likes = existing.Likes
	product.Rating = existing.Rating
	product.ReviewCount = existing.ReviewCount
	product.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.resolveImages(ctx, product)
	return nil
}

// GenerateUploadTarget returns an opaque write handle from the blob store.
// The upload happens before the product record is created, so a failed upload
// never leaves a product pointing at missing images.
func (s *CatalogService) GenerateUploadTarget(ctx context.Context) (*storage.UploadTarget, error) {
	return s.blobs.GenerateUploadTarget(ctx)
}
