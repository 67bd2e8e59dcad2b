package portal

import (
	"time"

	"github.com/google/uuid"
)

// UpcomingAppointment is a patient-facing slimmed-down appointment row.
type UpcomingAppointment struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	StaffName string    `json:"staff_name"`
	Reason    *string   `json:"reason,omitempty"`
}

// HomeExercise is an active home-program entry with its catalog details.
type HomeExercise struct {
	ID             uuid.UUID   `json:"id"`
	ExerciseName   string      `json:"exercise_name"`
	Description    *string     `json:"description,omitempty"`
	VideoURL       *string     `json:"video_url,omitempty"`
	Sets           *int        `json:"sets,omitempty"`
	Reps           *int        `json:"reps,omitempty"`
	Frequency      *string     `json:"frequency,omitempty"`
	CompletedDates []time.Time `json:"completed_dates"`
}

// OpenInvoice is an unpaid invoice as shown to the patient.
type OpenInvoice struct {
	ID          uuid.UUID `json:"id"`
	IssuedAt    time.Time `json:"issued_at"`
	TotalAmount float64   `json:"total_amount"`
}

// Dashboard is the patient portal landing payload.
type Dashboard struct {
	UpcomingAppointments []UpcomingAppointment `json:"upcoming_appointments"`
	Exercises            []HomeExercise        `json:"exercises"`
	UnpaidInvoices       []OpenInvoice         `json:"unpaid_invoices"`
	OutstandingBalance   float64               `json:"outstanding_balance"`
	PaidLast90Days       float64               `json:"paid_last_90_days"`
}
