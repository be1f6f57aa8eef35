package service

import (
	"context"
	"testing"
	"time"

	"github.com/aukdevgh/project-backend/internal/catalog"
	"github.com/aukdevgh/project-backend/internal/domain"
	"github.com/aukdevgh/project-backend/internal/repository"

	"github.com/google/uuid"
)

// fakeCatalog serves a fixed product list without a backing file.
type fakeCatalog struct {
	products []catalog.Product
}

func (f *fakeCatalog) Products() []catalog.Product {
	return f.products
}

func (f *fakeCatalog) Find(id string) (catalog.Product, bool) {
	for _, p := range f.products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

type variantKey struct {
	userID    uuid.UUID
	productID string
	size      string
	color     string
}

type mockCartRepository struct {
	items map[variantKey]*domain.CartItem
	order []variantKey
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{items: make(map[variantKey]*domain.CartItem)}
}

func (m *mockCartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CartItem, error) {
	items := []domain.CartItem{}
	for _, key := range m.order {
		if key.userID != userID {
			continue
		}
		if item, ok := m.items[key]; ok {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (m *mockCartRepository) Find(ctx context.Context, userID uuid.UUID, productID, size, color string) (*domain.CartItem, error) {
	item, ok := m.items[variantKey{userID, productID, size, color}]
	if !ok {
		return nil, repository.ErrCartItemNotFound
	}
	return item, nil
}

func (m *mockCartRepository) Create(ctx context.Context, item *domain.CartItem) error {
	key := variantKey{item.UserID, item.ProductID, item.Size, item.Color}
	m.items[key] = item
	m.order = append(m.order, key)
	return nil
}

func (m *mockCartRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID, size, color string, quantity int) error {
	item, ok := m.items[variantKey{userID, productID, size, color}]
	if !ok {
		return repository.ErrCartItemNotFound
	}
	item.Quantity = quantity
	return nil
}

func (m *mockCartRepository) Remove(ctx context.Context, userID uuid.UUID, productID, size, color string) error {
	key := variantKey{userID, productID, size, color}
	if _, ok := m.items[key]; !ok {
		return repository.ErrCartItemNotFound
	}
	delete(m.items, key)
	return nil
}

func (m *mockCartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	for key := range m.items {
		if key.userID == userID {
			delete(m.items, key)
		}
	}
	return nil
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{products: []catalog.Product{
		{
			ID:                 "1",
			Name:               "Classic Sneakers",
			Price:              89.99,
			DiscountPercentage: 10,
			Category:           "mens-shoes",
			Images:             []string{"/api/images/sneakers-white-1.webp", "/api/images/sneakers-black-1.webp"},
			Meta:               catalog.Meta{CreatedAt: time.Now()},
		},
		{
			ID:       "2",
			Name:     "Suede Boots",
			Price:    149,
			Category: "womens-shoes",
			Images:   []string{"/api/images/boots-brown-1.webp"},
		},
	}}
}

func TestCartAddAndGet(t *testing.T) {
	cartRepo := newMockCartRepository()
	service := NewCartService(cartRepo, testCatalog())
	ctx := context.Background()
	userID := uuid.New()

	if err := service.Add(ctx, userID, "1", "42", "sneakers-white", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	views, err := service.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("cart has %d items, want 1", len(views))
	}

	view := views[0]
	if view.ProductID != "1" || view.Quantity != 2 || view.Size != "42" {
		t.Errorf("view = %+v", view)
	}
	if view.Name != "Classic Sneakers" || view.Price != 89.99 || view.DiscountPercentage != 10 {
		t.Errorf("catalog fields not hydrated: %+v", view)
	}
	if view.Image != "/api/images/sneakers-white-1.webp" {
		t.Errorf("image should match the chosen color, got %q", view.Image)
	}
}

func TestCartAddMergesExistingVariant(t *testing.T) {
	cartRepo := newMockCartRepository()
	service := NewCartService(cartRepo, testCatalog())
	ctx := context.Background()
	userID := uuid.New()

	if err := service.Add(ctx, userID, "1", "42", "sneakers-white", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := service.Add(ctx, userID, "1", "42", "sneakers-white", 3); err != nil {
		t.Fatalf("repeat add failed: %v", err)
	}

	// Same variant merges; a different size is a separate row
	if err := service.Add(ctx, userID, "1", "43", "sneakers-white", 1); err != nil {
		t.Fatalf("add with other size failed: %v", err)
	}

	views, err := service.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("cart has %d rows, want 2", len(views))
	}
	if views[0].Quantity != 5 {
		t.Errorf("merged quantity = %d, want 5", views[0].Quantity)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	service := NewCartService(newMockCartRepository(), testCatalog())

	err := service.Add(context.Background(), uuid.New(), "missing", "42", "white", 1)
	if err != ErrProductNotFound {
		t.Errorf("unknown product returned %v, want ErrProductNotFound", err)
	}
}

func TestCartGetSkipsVanishedProducts(t *testing.T) {
	cartRepo := newMockCartRepository()
	cat := testCatalog()
	service := NewCartService(cartRepo, cat)
	ctx := context.Background()
	userID := uuid.New()

	if err := service.Add(ctx, userID, "1", "42", "sneakers-white", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := service.Add(ctx, userID, "2", "38", "boots-brown", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// Product 2 leaves the catalog on the next refresh
	cat.products = cat.products[:1]

	views, err := service.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(views) != 1 || views[0].ProductID != "1" {
		t.Errorf("vanished product still served: %+v", views)
	}
}

func TestCartUpdateAndRemove(t *testing.T) {
	cartRepo := newMockCartRepository()
	service := NewCartService(cartRepo, testCatalog())
	ctx := context.Background()
	userID := uuid.New()

	if err := service.UpdateQuantity(ctx, userID, "1", "42", "white", 3); err != ErrCartItemMissing {
		t.Errorf("update of absent item returned %v, want ErrCartItemMissing", err)
	}
	if err := service.Remove(ctx, userID, "1", "42", "white"); err != ErrCartItemMissing {
		t.Errorf("remove of absent item returned %v, want ErrCartItemMissing", err)
	}

	if err := service.Add(ctx, userID, "1", "42", "sneakers-white", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := service.UpdateQuantity(ctx, userID, "1", "42", "sneakers-white", 7); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	views, _ := service.Get(ctx, userID)
	if len(views) != 1 || views[0].Quantity != 7 {
		t.Errorf("cart after update: %+v", views)
	}

	if err := service.Remove(ctx, userID, "1", "42", "sneakers-white"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	views, _ = service.Get(ctx, userID)
	if len(views) != 0 {
		t.Errorf("cart after remove: %+v", views)
	}
}

func TestCartClear(t *testing.T) {
	cartRepo := newMockCartRepository()
	service := NewCartService(cartRepo, testCatalog())
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	service.Add(ctx, userID, "1", "42", "sneakers-white", 1)
	service.Add(ctx, userID, "2", "38", "boots-brown", 1)
	service.Add(ctx, otherID, "1", "43", "sneakers-black", 1)

	if err := service.Clear(ctx, userID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	views, _ := service.Get(ctx, userID)
	if len(views) != 0 {
		t.Errorf("cart not cleared: %+v", views)
	}

	// Clearing one cart must not touch another user's cart
	otherViews, _ := service.Get(ctx, otherID)
	if len(otherViews) != 1 {
		t.Errorf("another user's cart was cleared: %+v", otherViews)
	}
}
