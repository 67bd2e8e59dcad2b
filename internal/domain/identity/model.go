package identity

import (
	"time"

	"github.com/google/uuid"
)

// User is a login account. Staff accounts may link to a staff row, patient
// accounts always link to their patient row.
type User struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Role             string     `json:"role"`
	StaffID          *uuid.UUID `json:"staff_id,omitempty"`
	PatientID        *uuid.UUID `json:"patient_id,omitempty"`
	Active           bool       `json:"active"`
	FailedLoginCount int        `json:"failed_login_count"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
