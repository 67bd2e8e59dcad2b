package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable catalog entry with a tracked stock level.
type Product struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	SKU        string    `json:"sku"`
	Category   *string   `json:"category,omitempty"`
	UnitPrice  float64   `json:"unit_price"`
	StockLevel int       `json:"stock_level"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
