package portal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository reads patient-scoped rows for the portal. Every query filters
// by the owning patient id.
type Repository interface {
	UpcomingAppointments(ctx context.Context, patientID uuid.UUID, from time.Time) ([]UpcomingAppointment, error)
	ActiveExercises(ctx context.Context, patientID uuid.UUID) ([]HomeExercise, error)
	UnpaidInvoices(ctx context.Context, patientID uuid.UUID) ([]OpenInvoice, error)
	PaidTotalSince(ctx context.Context, patientID uuid.UUID, since time.Time) (float64, error)
}
