package scheduling

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

// Appointment is a booked slot. Times are stored and returned in UTC.
type Appointment struct {
	ID           uuid.UUID  `json:"id"`
	PatientID    uuid.UUID  `json:"patient_id"`
	StaffID      *uuid.UUID `json:"staff_id,omitempty"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Status       string     `json:"status"`
	Reason       *string    `json:"reason,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	ReminderSent bool       `json:"reminder_sent"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Joined display names, populated on reads.
	PatientName string `json:"patient_name,omitempty"`
	StaffName   string `json:"staff_name,omitempty"`
}
