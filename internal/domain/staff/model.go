package staff

import (
	"time"

	"github.com/google/uuid"
)

// Staff is a clinic employee: practitioners, reception, admins.
type Staff struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Email     *string    `json:"email,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
