package repositories

import (
	"errors"
	"fmt"

	"velora/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// CreateFromCart snapshots the user's cart into a pending order and clears
// the cart, all inside one database transaction. The cart and products are
// read inside the same transaction as the writes, not from values fetched by
// an earlier call.
func (r *GORMOrderRepository) CreateFromCart(userID string, shipping models.ShippingAddress) (*models.Order, error) {
	var order *models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("created_at ASC").Find(&cartItems).Error; err != nil {
			return fmt.Errorf("failed to load cart for user %s: %w", userID, err)
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		var totalAmount float64
		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %s: %w", item.ProductID, ErrNotFound)
				}
				return fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
			}

			price := product.PriceFor(item.Version)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Version:   item.Version,
				Quantity:  item.Quantity,
				Price:     price,
			})
			totalAmount += price * float64(item.Quantity)
		}

		order = &models.Order{
			ID:              uuid.New().String(),
			UserID:          userID,
			Items:           orderItems,
			TotalAmount:     totalAmount,
			Status:          models.OrderStatusPending,
			ShippingAddress: shipping,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID returns an order with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}

// ListByUser returns the user's orders, most recent first.
func (r *GORMOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// ListAll returns every order, most recent first.
func (r *GORMOrderRepository) ListAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list all orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the status of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountByUser returns the number of orders placed by the user.
func (r *GORMOrderRepository) CountByUser(userID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders for user %s: %w", userID, err)
	}
	return count, nil
}
