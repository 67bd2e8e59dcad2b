package exercise

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/validate"
)

type Service struct {
	catalog     Repository
	assignments AssignmentRepository
}

func NewService(catalog Repository, assignments AssignmentRepository) *Service {
	return &Service{catalog: catalog, assignments: assignments}
}

func (s *Service) validate(e *Exercise) error {
	if strings.TrimSpace(e.Name) == "" {
		return validate.Errorf("exercise name is required")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, e *Exercise) error {
	if err := s.validate(e); err != nil {
		return err
	}
	return s.catalog.Create(ctx, e)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Exercise, error) {
	return s.catalog.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, e *Exercise) error {
	if err := s.validate(e); err != nil {
		return err
	}
	return s.catalog.Update(ctx, e)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.catalog.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, query string, limit, offset int) ([]*Exercise, int, error) {
	return s.catalog.List(ctx, query, limit, offset)
}

// Assign prescribes a catalog exercise to a patient. The exercise must
// exist; the assignment starts active with an empty completion log.
func (s *Service) Assign(ctx context.Context, a *AssignedExercise) error {
	if a.PatientID == uuid.Nil {
		return validate.Errorf("patient_id is required")
	}
	if a.ExerciseID == uuid.Nil {
		return validate.Errorf("exercise_id is required")
	}
	if _, err := s.catalog.GetByID(ctx, a.ExerciseID); err != nil {
		if db.IsNotFound(err) {
			return validate.Errorf("exercise %s does not exist", a.ExerciseID)
		}
		return fmt.Errorf("load exercise %s: %w", a.ExerciseID, err)
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now().UTC()
	}
	a.Active = true
	a.CompletedDates = []time.Time{}
	return s.assignments.Assign(ctx, a)
}

func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID, activeOnly bool) ([]*AssignedExercise, error) {
	return s.assignments.ListForPatient(ctx, patientID, activeOnly)
}

func (s *Service) GetAssignment(ctx context.Context, id uuid.UUID) (*AssignedExercise, error) {
	return s.assignments.GetByID(ctx, id)
}

// Complete appends today's date to the assignment's completion log. A second
// completion on the same day is a no-op.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*AssignedExercise, error) {
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, d := range a.CompletedDates {
		if d.UTC().Truncate(24 * time.Hour).Equal(today) {
			return a, nil
		}
	}
	a.CompletedDates = append(a.CompletedDates, today)
	if err := s.assignments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
