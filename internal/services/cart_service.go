package services

import (
	"context"
	"errors"

	"velora/internal/models"
	"velora/internal/repositories"
)

// CartService handles business logic related to the shopping cart.
type CartService struct {
	cartRepo repositories.CartRepository
	catalog  *CatalogService
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, catalog *CatalogService) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		catalog:  catalog,
	}
}

// ListCart returns the user's cart lines joined with their products, image
// URLs resolved for display. Lines whose product no longer resolves are
// silently dropped. An unauthenticated caller gets an empty cart, not an error.
func (s *CartService) ListCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	if userID == "" {
		return []models.CartItem{}, nil
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue // dangling line, drop it from the listing
		}
		item.Product = product
		result = append(result, item)
	}
	return result, nil
}

// AddToCart merges quantity into the (user, product, version) line or creates it.
func (s *CartService) AddToCart(userID, productID string, version models.Version, quantity int) (*models.CartItem, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !models.ValidVersion(version) {
		return nil, ErrInvalidVersion
	}
	return s.cartRepo.Add(userID, productID, version, quantity)
}

// ownedItem loads a cart line and verifies it belongs to the caller. A line
// owned by someone else reports not-found, never success or a hint that the
// line exists.
func (s *CartService) ownedItem(userID, itemID string) (*models.CartItem, error) {
	item, err := s.cartRepo.GetByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrNotFound
	}
	return item, nil
}

// RemoveFromCart deletes one of the caller's cart lines.
func (s *CartService) RemoveFromCart(userID, itemID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(item.ID)
}

// SetQuantity patches a cart line's quantity; zero or below deletes the line
// instead of ever storing a non-positive quantity.
func (s *CartService) SetQuantity(userID, itemID string, quantity int) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return s.cartRepo.Delete(item.ID)
	}
	return s.cartRepo.UpdateQuantity(item.ID, quantity)
}
