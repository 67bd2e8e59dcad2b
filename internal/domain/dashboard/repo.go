package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScheduleEntry is one row of today's appointment list.
type ScheduleEntry struct {
	ID          uuid.UUID `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	PatientName string    `json:"patient_name"`
	StaffName   string    `json:"staff_name"`
}

// Repository exposes the read queries the dashboard aggregates over.
// All windows are half-open [from, to).
type Repository interface {
	PaidRevenueBetween(ctx context.Context, from, to time.Time) (float64, error)
	AppointmentCountBetween(ctx context.Context, from, to time.Time) (int, error)
	CancellationCountBetween(ctx context.Context, from, to time.Time) (int, error)
	ScheduleBetween(ctx context.Context, from, to time.Time) ([]ScheduleEntry, error)
	PatientBirthDates(ctx context.Context) ([]time.Time, error)
	PatientCount(ctx context.Context) (int, error)
	DailyAppointmentCounts(ctx context.Context, from, to time.Time) (map[string]int, error)
}
