package notes

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/validate"
)

type Service struct {
	notes Repository
}

func NewService(notes Repository) *Service {
	return &Service{notes: notes}
}

func (s *Service) Create(ctx context.Context, n *ClinicalNote) error {
	if n.PatientID == uuid.Nil {
		return validate.Errorf("patient_id is required")
	}
	if strings.TrimSpace(n.Body) == "" {
		return validate.Errorf("note body is required")
	}
	return s.notes.Create(ctx, n)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ClinicalNote, error) {
	return s.notes.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, n *ClinicalNote) error {
	if strings.TrimSpace(n.Body) == "" {
		return validate.Errorf("note body is required")
	}
	return s.notes.Update(ctx, n)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.notes.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ClinicalNote, int, error) {
	return s.notes.List(ctx, patientID, limit, offset)
}
