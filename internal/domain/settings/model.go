package settings

import "time"

// Settings is the clinic-wide configuration, persisted as a single row.
type Settings struct {
	ClinicName                 string    `json:"clinic_name"`
	Address                    *string   `json:"address,omitempty"`
	Phone                      *string   `json:"phone,omitempty"`
	Email                      *string   `json:"email,omitempty"`
	Currency                   string    `json:"currency"`
	AppointmentDurationMinutes int       `json:"appointment_duration_minutes"`
	UpdatedAt                  time.Time `json:"updated_at"`
}
