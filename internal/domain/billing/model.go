package billing

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusUnpaid = "unpaid"
	StatusPaid   = "paid"
)

const (
	DiscountNone    = "none"
	DiscountPercent = "percent"
	DiscountFlat    = "flat"
)

type Invoice struct {
	ID             uuid.UUID  `json:"id"`
	PatientID      uuid.UUID  `json:"patient_id"`
	AppointmentID  *uuid.UUID `json:"appointment_id,omitempty"`
	Status         string     `json:"status"`
	Subtotal       float64    `json:"subtotal"`
	DiscountType   string     `json:"discount_type"`
	DiscountValue  float64    `json:"discount_value"`
	DiscountAmount float64    `json:"discount_amount"`
	TotalAmount    float64    `json:"total_amount"`
	IssuedAt       time.Time  `json:"issued_at"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Items []InvoiceItem `json:"items"`

	// Joined display name, populated on reads.
	PatientName string `json:"patient_name,omitempty"`
}

type InvoiceItem struct {
	ID          uuid.UUID `json:"id"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	Amount      float64   `json:"amount"`
}
