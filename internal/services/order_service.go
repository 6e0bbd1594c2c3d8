package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"velora/internal/models"
	"velora/internal/repositories"
)

// EventPublisher publishes order lifecycle events to the message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderService handles business logic related to orders and checkout.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	events    EventPublisher
}

// NewOrderService creates a new OrderService. events may be nil, in which
// case publication is skipped.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		events:    events,
	}
}

// CreateOrder snapshots the caller's cart into a pending order. The repository
// performs the read-compute-write-clear sequence as one transaction; either
// the order exists and the cart is empty, or neither changed.
func (s *OrderService) CreateOrder(userID string, shipping models.ShippingAddress) (*models.Order, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	order, err := s.orderRepo.CreateFromCart(userID, shipping)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmptyCart):
			return nil, ErrEmptyCart
		case errors.Is(err, repositories.ErrNotFound):
			return nil, fmt.Errorf("checkout failed: %w", ErrNotFound)
		default:
			return nil, err
		}
	}

	s.publishOrderCreated(order)
	return order, nil
}

// publishOrderCreated emits an order.created event. Publication happens after
// the transaction committed and never fails the order.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.events == nil {
		log.Println("Event publisher is not initialized. Skipping order.created publication.")
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
		"total":    order.TotalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal order.created event for order %s: %v", order.ID, err)
		return
	}
	if err := s.events.Publish("order.created", body); err != nil {
		log.Printf("Warning: Failed to publish order.created event for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Published order.created event for order %s", order.ID)
}

// ListOrders returns the caller's orders, most recent first.
func (s *OrderService) ListOrders(userID string) ([]models.Order, error) {
	if userID == "" {
		return []models.Order{}, nil
	}
	return s.orderRepo.ListByUser(userID)
}

// GetOrder returns one of the caller's orders. Someone else's order reports
// not-found.
func (s *OrderService) GetOrder(userID, orderID string) (*models.Order, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListAllOrders returns every order joined with its user, most recent first.
// Administrative, report-style read: it loads the full collection.
func (s *OrderService) ListAllOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.ListAll()
	if err != nil {
		return nil, err
	}
	for i := range orders {
		user, err := s.userRepo.GetByID(orders[i].UserID)
		if err != nil {
			continue // order survives its user being gone
		}
		user.Password = ""
		orders[i].User = user
	}
	return orders, nil
}

// UpdateOrderStatus sets an order's status. Any of the five states is
// reachable from any other; this is an admin override, not a workflow.
func (s *OrderService) UpdateOrderStatus(orderID string, status models.OrderStatus) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
