package patient

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/validate"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

var validGenders = map[string]bool{
	"male": true, "female": true, "other": true, "unknown": true,
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.FirstName == "" && p.LastName == "" {
		return validate.Errorf("patient name is required")
	}
	if p.Gender != nil && !validGenders[*p.Gender] {
		return validate.Errorf("invalid gender: %s", *p.Gender)
	}
	if p.BirthDate != nil {
		if p.BirthDate.After(time.Now().UTC()) {
			return validate.Errorf("birth_date must not be in the future")
		}
		utc := p.BirthDate.UTC()
		p.BirthDate = &utc
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.FirstName == "" && p.LastName == "" {
		return validate.Errorf("patient name is required")
	}
	if p.Gender != nil && !validGenders[*p.Gender] {
		return validate.Errorf("invalid gender: %s", *p.Gender)
	}
	if p.BirthDate != nil {
		utc := p.BirthDate.UTC()
		p.BirthDate = &utc
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, query, limit, offset)
}
