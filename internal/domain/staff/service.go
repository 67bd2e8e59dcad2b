package staff

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/validate"
)

type Service struct {
	staff Repository
}

func NewService(staff Repository) *Service {
	return &Service{staff: staff}
}

func (s *Service) validate(m *Staff) error {
	if strings.TrimSpace(m.Name) == "" {
		return validate.Errorf("staff name is required")
	}
	if strings.TrimSpace(m.Role) == "" {
		return validate.Errorf("staff role is required")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, m *Staff) error {
	if err := s.validate(m); err != nil {
		return err
	}
	return s.staff.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, m *Staff) error {
	if err := s.validate(m); err != nil {
		return err
	}
	return s.staff.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.staff.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, query string, limit, offset int) ([]*Staff, int, error) {
	return s.staff.List(ctx, query, limit, offset)
}
