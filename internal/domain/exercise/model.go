package exercise

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is a catalog entry prescribable to patients.
type Exercise struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	VideoURL    *string   `json:"video_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssignedExercise links a catalog exercise to a patient's home program.
// CompletedDates collects the days the patient marked it done.
type AssignedExercise struct {
	ID             uuid.UUID   `json:"id"`
	PatientID      uuid.UUID   `json:"patient_id"`
	ExerciseID     uuid.UUID   `json:"exercise_id"`
	AssignedAt     time.Time   `json:"assigned_at"`
	Sets           *int        `json:"sets,omitempty"`
	Reps           *int        `json:"reps,omitempty"`
	Frequency      *string     `json:"frequency,omitempty"`
	CompletedDates []time.Time `json:"completed_dates"`
	Active         bool        `json:"active"`

	// Joined catalog fields, populated on reads.
	ExerciseName string  `json:"exercise_name,omitempty"`
	VideoURL     *string `json:"video_url,omitempty"`
}
