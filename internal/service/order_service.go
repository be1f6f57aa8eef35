package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aukdevgh/project-backend/internal/domain"
	"github.com/aukdevgh/project-backend/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// OrderView is an order with its items hydrated from the catalog snapshot.
type OrderView struct {
	ID              uuid.UUID  `json:"id"`
	CartItems       []CartView `json:"cartItems"`
	TotalPrice      float64    `json:"totalPrice"`
	PaymentMethod   string     `json:"paymentMethod"`
	ShippingAddress string     `json:"shippingAddress"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// CheckoutInput carries the submitted checkout payload
type CheckoutInput struct {
	Items           []domain.OrderItem
	TotalPrice      float64
	PaymentMethod   string
	ShippingAddress string
}

// OrderService defines the interface for checkout and order history logic
type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderView, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	catalog   Catalog
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, catalog Catalog) OrderService {
	return &orderService{orderRepo: orderRepo, cartRepo: cartRepo, catalog: catalog}
}

// Checkout persists a pending order from the submitted cart items and clears
// the user's cart
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Items:           input.Items,
		TotalPrice:      input.TotalPrice,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
		Status:          domain.OrderStatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart after checkout: %w", err)
	}

	return order, nil
}

// ListByUser returns the user's order history, newest first, with each item
// hydrated from the catalog
func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderView, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	views := []OrderView{}
	for _, order := range orders {
		items := []CartView{}
		for _, item := range order.Items {
			view := CartView{
				ProductID: item.ProductID,
				Size:      item.Size,
				Color:     item.Color,
				Quantity:  item.Quantity,
			}
			if product, ok := s.catalog.Find(item.ProductID); ok {
				view.Name = product.Name
				view.Price = product.Price
				view.DiscountPercentage = product.DiscountPercentage
				view.Category = product.Category
				view.Image = product.ImageForColor(item.Color)
			}
			items = append(items, view)
		}

		views = append(views, OrderView{
			ID:              order.ID,
			CartItems:       items,
			TotalPrice:      math.Round(order.TotalPrice*100) / 100,
			PaymentMethod:   order.PaymentMethod,
			ShippingAddress: order.ShippingAddress,
			Status:          order.Status,
			CreatedAt:       order.CreatedAt,
			UpdatedAt:       order.UpdatedAt,
		})
	}

	return views, nil
}
