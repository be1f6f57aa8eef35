package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for product reviews
const (
	MinRating = 1
	MaxRating = 5
)

// Comment is a product review with a star rating. UserName and UserEmail are
// joined from the users table when listing.
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID string    `json:"productId" db:"product_id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	UserName  string    `json:"userName,omitempty" db:"user_name"`
	UserEmail string    `json:"userEmail,omitempty" db:"user_email"`
	Text      string    `json:"text" db:"text"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
