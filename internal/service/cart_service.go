package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aukdevgh/project-backend/internal/domain"
	"github.com/aukdevgh/project-backend/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCartItemMissing = errors.New("cart item not found")
)

// CartView is a cart item hydrated with the product's current catalog data.
type CartView struct {
	ProductID          string  `json:"id"`
	Name               string  `json:"name"`
	Price              float64 `json:"price"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Category           string  `json:"category"`
	Image              string  `json:"image"`
	Size               string  `json:"size"`
	Color              string  `json:"color"`
	Quantity           int     `json:"quantity"`
}

// CartService defines the interface for shopping cart business logic
type CartService interface {
	Get(ctx context.Context, userID uuid.UUID) ([]CartView, error)
	Add(ctx context.Context, userID uuid.UUID, productID, size, color string, quantity int) error
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID, size, color string, quantity int) error
	Remove(ctx context.Context, userID uuid.UUID, productID, size, color string) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	cartRepo repository.CartRepository
	catalog  Catalog
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, catalog Catalog) CartService {
	return &cartService{cartRepo: cartRepo, catalog: catalog}
}

// Get returns the user's cart hydrated from the catalog snapshot. Items
// whose product has left the catalog are skipped rather than served stale.
func (s *cartService) Get(ctx context.Context, userID uuid.UUID) ([]CartView, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	views := []CartView{}
	for _, item := range items {
		product, ok := s.catalog.Find(item.ProductID)
		if !ok {
			continue
		}
		views = append(views, CartView{
			ProductID:          item.ProductID,
			Name:               product.Name,
			Price:              product.Price,
			DiscountPercentage: product.DiscountPercentage,
			Category:           product.Category,
			Image:              product.ImageForColor(item.Color),
			Size:               item.Size,
			Color:              item.Color,
			Quantity:           item.Quantity,
		})
	}

	return views, nil
}

// Add puts a product variant into the cart. Adding an already present
// variant increases its quantity instead of duplicating the row.
func (s *cartService) Add(ctx context.Context, userID uuid.UUID, productID, size, color string, quantity int) error {
	existing, err := s.cartRepo.Find(ctx, userID, productID, size, color)
	if err != nil && err != repository.ErrCartItemNotFound {
		return fmt.Errorf("failed to check cart: %w", err)
	}

	if existing != nil {
		return s.cartRepo.UpdateQuantity(ctx, userID, productID, size, color, existing.Quantity+quantity)
	}

	if _, ok := s.catalog.Find(productID); !ok {
		return ErrProductNotFound
	}

	item := &domain.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Size:      size,
		Color:     color,
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.cartRepo.Create(ctx, item); err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

// UpdateQuantity sets the quantity of one cart variant
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID, size, color string, quantity int) error {
	err := s.cartRepo.UpdateQuantity(ctx, userID, productID, size, color, quantity)
	if err == repository.ErrCartItemNotFound {
		return ErrCartItemMissing
	}
	return err
}

// Remove deletes one cart variant
func (s *cartService) Remove(ctx context.Context, userID uuid.UUID, productID, size, color string) error {
	err := s.cartRepo.Remove(ctx, userID, productID, size, color)
	if err == repository.ErrCartItemNotFound {
		return ErrCartItemMissing
	}
	return err
}

// Clear empties the user's cart
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.Clear(ctx, userID)
}
