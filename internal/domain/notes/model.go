package notes

import (
	"time"

	"github.com/google/uuid"
)

// ClinicalNote is free-text documentation attached to a patient record.
type ClinicalNote struct {
	ID            uuid.UUID  `json:"id"`
	PatientID     uuid.UUID  `json:"patient_id"`
	AuthorStaffID *uuid.UUID `json:"author_staff_id,omitempty"`
	Title         *string    `json:"title,omitempty"`
	Body          string     `json:"body"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	AuthorName string `json:"author_name,omitempty"`
}
