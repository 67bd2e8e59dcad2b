package exercise

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, e *Exercise) error
	GetByID(ctx context.Context, id uuid.UUID) (*Exercise, error)
	Update(ctx context.Context, e *Exercise) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query string, limit, offset int) ([]*Exercise, int, error)
}

type AssignmentRepository interface {
	Assign(ctx context.Context, a *AssignedExercise) error
	GetByID(ctx context.Context, id uuid.UUID) (*AssignedExercise, error)
	Update(ctx context.Context, a *AssignedExercise) error
	ListForPatient(ctx context.Context, patientID uuid.UUID, activeOnly bool) ([]*AssignedExercise, error)
}
