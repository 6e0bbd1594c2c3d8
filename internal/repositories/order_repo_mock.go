package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"velora/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It reads from the mock cart and product repositories so CreateFromCart
// behaves like the transactional database implementation: either the order is
// created and the cart cleared, or neither happens.
type MockOrderRepository struct {
	orders   map[string]models.Order
	carts    *MockCartRepository
	products *MockProductRepository
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(carts *MockCartRepository, products *MockProductRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		carts:    carts,
		products: products,
	}
}

// CreateFromCart snapshots the user's cart into a pending order and clears it.
// All product lookups happen before any write so a missing product leaves both
// the order set and the cart untouched.
func (r *MockOrderRepository) CreateFromCart(userID string, shipping models.ShippingAddress) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cartItems, err := r.carts.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	var totalAmount float64
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		product, err := r.products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
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

	order := models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           orderItems,
		TotalAmount:     totalAmount,
		Status:          models.OrderStatusPending,
		ShippingAddress: shipping,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	r.orders[order.ID] = order

	for _, item := range cartItems {
		if err := r.carts.Delete(item.ID); err != nil {
			return nil, err
		}
	}
	return &order, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// ListByUser returns the user's orders, most recent first.
func (r *MockOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// ListAll returns every order, most recent first.
func (r *MockOrderRepository) ListAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// UpdateStatus sets the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// CountByUser returns the number of orders placed by the user.
func (r *MockOrderRepository) CountByUser(userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, order := range r.orders {
		if order.UserID == userID {
			count++
		}
	}
	return count, nil
}
