package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// PaymentMethods lists the accepted checkout payment methods.
var PaymentMethods = []string{"visa", "master-card", "pay-pal", "apple-pay", "google-pay"}

// Order represents a placed checkout order
type Order struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	UserID          uuid.UUID   `json:"-" db:"user_id"`
	Items           []OrderItem `json:"cartItems"`
	TotalPrice      float64     `json:"totalPrice" db:"total_price"`
	PaymentMethod   string      `json:"paymentMethod" db:"payment_method"`
	ShippingAddress string      `json:"shippingAddress" db:"shipping_address"`
	Status          string      `json:"status" db:"status"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is one ordered product variant
type OrderItem struct {
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID string    `json:"id" db:"product_id"`
	Size      string    `json:"size" db:"size"`
	Color     string    `json:"color" db:"color"`
	Quantity  int       `json:"quantity" db:"quantity"`
}
