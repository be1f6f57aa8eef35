package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Settings holds a user's UI preferences (currency, language, theme) as an
// opaque JSON document owned by the frontend.
type Settings struct {
	UserID       uuid.UUID       `json:"-" db:"user_id"`
	JSONSettings json.RawMessage `json:"jsonSettings" db:"json_settings"`
	UpdatedAt    time.Time       `json:"-" db:"updated_at"`
}
