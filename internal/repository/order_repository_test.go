package repository

import (
	"context"
	"testing"
	"time"

	"github.com/aukdevgh/project-backend/internal/domain"

	"github.com/google/uuid"
)

func newTestOrder(userID uuid.UUID, totalPrice float64) *domain.Order {
	return &domain.Order{
		ID:     uuid.New(),
		UserID: userID,
		Items: []domain.OrderItem{
			{ProductID: "1", Size: "42", Color: "white", Quantity: 2},
			{ProductID: "2", Size: "40", Color: "black", Quantity: 1},
		},
		TotalPrice:      totalPrice,
		PaymentMethod:   "visa",
		ShippingAddress: "1 Main St",
		Status:          domain.OrderStatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func TestOrderRepositoryCreateAndList(t *testing.T) {
	repo := NewOrderRepository(testDB)
	ctx := context.Background()
	user := createTestUser(t, "orders@example.com")

	order := newTestOrder(user.ID, 199.99)
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	t.Cleanup(func() {
		testDB.Exec("DELETE FROM orders WHERE id = $1", order.ID)
	})

	orders, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(orders))
	}

	got := orders[0]
	if got.TotalPrice != 199.99 || got.PaymentMethod != "visa" || got.Status != domain.OrderStatusPending {
		t.Errorf("order = %+v", got)
	}
	if len(got.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(got.Items))
	}
	if got.Items[0].ProductID != "1" || got.Items[0].Quantity != 2 {
		t.Errorf("items = %+v", got.Items)
	}
}

func TestOrderRepositoryListNewestFirst(t *testing.T) {
	repo := NewOrderRepository(testDB)
	ctx := context.Background()
	user := createTestUser(t, "order-history@example.com")

	older := newTestOrder(user.ID, 50)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := newTestOrder(user.ID, 75)

	for _, o := range []*domain.Order{older, newer} {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		id := o.ID
		t.Cleanup(func() {
			testDB.Exec("DELETE FROM orders WHERE id = $1", id)
		})
	}

	orders, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != newer.ID || orders[1].ID != older.ID {
		t.Errorf("history not newest first: %+v", orders)
	}
}

func TestOrderRepositoryRejectsUnknownPaymentMethod(t *testing.T) {
	repo := NewOrderRepository(testDB)
	ctx := context.Background()
	user := createTestUser(t, "bad-payment@example.com")

	order := newTestOrder(user.ID, 10)
	order.PaymentMethod = "barter"

	if err := repo.Create(ctx, order); err == nil {
		testDB.Exec("DELETE FROM orders WHERE id = $1", order.ID)
		t.Error("unknown payment method should violate the check constraint")
	}

	// The insert runs in one transaction, so the failed order leaves no rows
	var count int
	testDB.QueryRow("SELECT COUNT(*) FROM orders WHERE user_id = $1", user.ID).Scan(&count)
	if count != 0 {
		t.Errorf("failed checkout left %d order rows", count)
	}
}

func TestOrderRepositoryListEmpty(t *testing.T) {
	repo := NewOrderRepository(testDB)
	user := createTestUser(t, "no-orders@example.com")

	orders, err := repo.ListByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("got %d orders, want 0", len(orders))
	}
}
