package scheduling

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/validate"
)

type Service struct {
	appointments Repository
}

func NewService(appointments Repository) *Service {
	return &Service{appointments: appointments}
}

var validStatuses = map[string]bool{
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCancelled: true,
	StatusNoShow:    true,
}

func (s *Service) validate(a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return validate.Errorf("patient_id is required")
	}
	if a.StartTime.IsZero() || a.EndTime.IsZero() {
		return validate.Errorf("start_time and end_time are required")
	}
	if !a.EndTime.After(a.StartTime) {
		return validate.Errorf("end_time must be after start_time")
	}
	if !validStatuses[a.Status] {
		return validate.Errorf("invalid status: %s", a.Status)
	}
	a.StartTime = a.StartTime.UTC()
	a.EndTime = a.EndTime.UTC()
	return nil
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if err := s.validate(a); err != nil {
		return err
	}
	return s.appointments.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	if err := s.validate(a); err != nil {
		return err
	}
	return s.appointments.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, f, limit, offset)
}
