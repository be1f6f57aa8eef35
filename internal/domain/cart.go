package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product variant (id + size + color) in a user's cart.
// Display fields (name, price, image) are resolved from the catalog at read
// time rather than stored, so the cart never serves stale prices.
type CartItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	ProductID string    `json:"id" db:"product_id"`
	Size      string    `json:"size" db:"size"`
	Color     string    `json:"color" db:"color"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}
