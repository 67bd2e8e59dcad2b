package portal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	reads Repository
	now   func() time.Time
}

func NewService(reads Repository) *Service {
	return &Service{reads: reads, now: time.Now}
}

// Dashboard assembles the portal landing page for one patient. Reads fan
// out concurrently; any failure fails the whole request.
func (s *Service) Dashboard(ctx context.Context, patientID uuid.UUID) (*Dashboard, error) {
	now := s.now().UTC()
	var d Dashboard

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.UpcomingAppointments, err = s.reads.UpcomingAppointments(ctx, patientID, now)
		return
	})
	g.Go(func() (err error) {
		d.Exercises, err = s.reads.ActiveExercises(ctx, patientID)
		return
	})
	g.Go(func() (err error) {
		d.UnpaidInvoices, err = s.reads.UnpaidInvoices(ctx, patientID)
		return
	})
	g.Go(func() (err error) {
		d.PaidLast90Days, err = s.reads.PaidTotalSince(ctx, patientID, now.AddDate(0, 0, -90))
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, inv := range d.UnpaidInvoices {
		d.OutstandingBalance += inv.TotalAmount
	}
	if d.UpcomingAppointments == nil {
		d.UpcomingAppointments = []UpcomingAppointment{}
	}
	if d.Exercises == nil {
		d.Exercises = []HomeExercise{}
	}
	if d.UnpaidInvoices == nil {
		d.UnpaidInvoices = []OpenInvoice{}
	}
	return &d, nil
}
