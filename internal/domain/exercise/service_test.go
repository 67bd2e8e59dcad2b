package exercise

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clinic/clinic/internal/platform/validate"
)

type mockCatalog struct {
	items map[uuid.UUID]*Exercise
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{items: map[uuid.UUID]*Exercise{}}
}

func (m *mockCatalog) Create(_ context.Context, e *Exercise) error {
	e.ID = uuid.New()
	m.items[e.ID] = e
	return nil
}

func (m *mockCatalog) GetByID(_ context.Context, id uuid.UUID) (*Exercise, error) {
	e, ok := m.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return e, nil
}

func (m *mockCatalog) Update(_ context.Context, e *Exercise) error {
	if _, ok := m.items[e.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.items[e.ID] = e
	return nil
}

func (m *mockCatalog) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *mockCatalog) List(_ context.Context, query string, limit, offset int) ([]*Exercise, int, error) {
	var all []*Exercise
	for _, e := range m.items {
		all = append(all, e)
	}
	return all, len(all), nil
}

type mockAssignments struct {
	items map[uuid.UUID]*AssignedExercise
}

func newMockAssignments() *mockAssignments {
	return &mockAssignments{items: map[uuid.UUID]*AssignedExercise{}}
}

func (m *mockAssignments) Assign(_ context.Context, a *AssignedExercise) error {
	a.ID = uuid.New()
	m.items[a.ID] = a
	return nil
}

func (m *mockAssignments) GetByID(_ context.Context, id uuid.UUID) (*AssignedExercise, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return a, nil
}

func (m *mockAssignments) Update(_ context.Context, a *AssignedExercise) error {
	if _, ok := m.items[a.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.items[a.ID] = a
	return nil
}

func (m *mockAssignments) ListForPatient(_ context.Context, patientID uuid.UUID, activeOnly bool) ([]*AssignedExercise, error) {
	var out []*AssignedExercise
	for _, a := range m.items {
		if a.PatientID != patientID {
			continue
		}
		if activeOnly && !a.Active {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func newTestService() (*Service, *mockCatalog, *mockAssignments) {
	catalog := newMockCatalog()
	assignments := newMockAssignments()
	return NewService(catalog, assignments), catalog, assignments
}

func TestAssign(t *testing.T) {
	svc, catalog, _ := newTestService()

	e := &Exercise{Name: "Wall slide"}
	if err := catalog.Create(context.Background(), e); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a := &AssignedExercise{PatientID: uuid.New(), ExerciseID: e.ID}
	if err := svc.Assign(context.Background(), a); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if !a.Active {
		t.Error("new assignment should be active")
	}
	if a.AssignedAt.IsZero() {
		t.Error("AssignedAt should default to now")
	}
	if a.CompletedDates == nil || len(a.CompletedDates) != 0 {
		t.Error("completion log should start empty, not nil")
	}
}

func TestAssign_UnknownExercise(t *testing.T) {
	svc, _, _ := newTestService()

	a := &AssignedExercise{PatientID: uuid.New(), ExerciseID: uuid.New()}
	err := svc.Assign(context.Background(), a)
	if err == nil {
		t.Fatal("expected error for unknown exercise")
	}
	if !validate.IsInvalid(err) {
		t.Errorf("error should be a client input error, got %v", err)
	}
}

func TestComplete_AppendsToday(t *testing.T) {
	svc, catalog, assignments := newTestService()

	e := &Exercise{Name: "Wall slide"}
	if err := catalog.Create(context.Background(), e); err != nil {
		t.Fatalf("seed: %v", err)
	}
	a := &AssignedExercise{PatientID: uuid.New(), ExerciseID: e.ID}
	if err := svc.Assign(context.Background(), a); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	got, err := svc.Complete(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(got.CompletedDates) != 1 {
		t.Fatalf("logged %d dates, want 1", len(got.CompletedDates))
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !got.CompletedDates[0].Equal(today) {
		t.Errorf("logged %v, want %v", got.CompletedDates[0], today)
	}

	// second completion on the same day is a no-op
	got, err = svc.Complete(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Complete again: %v", err)
	}
	if len(got.CompletedDates) != 1 {
		t.Errorf("logged %d dates after repeat, want 1", len(got.CompletedDates))
	}
	if stored := assignments.items[a.ID]; len(stored.CompletedDates) != 1 {
		t.Errorf("stored %d dates, want 1", len(stored.CompletedDates))
	}
}

func TestListForPatient_ActiveOnly(t *testing.T) {
	svc, catalog, assignments := newTestService()

	e := &Exercise{Name: "Wall slide"}
	if err := catalog.Create(context.Background(), e); err != nil {
		t.Fatalf("seed: %v", err)
	}
	patientID := uuid.New()

	active := &AssignedExercise{PatientID: patientID, ExerciseID: e.ID}
	if err := svc.Assign(context.Background(), active); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	inactive := &AssignedExercise{PatientID: patientID, ExerciseID: e.ID}
	if err := svc.Assign(context.Background(), inactive); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	inactive.Active = false
	if err := assignments.Update(context.Background(), inactive); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	got, err := svc.ListForPatient(context.Background(), patientID, true)
	if err != nil {
		t.Fatalf("ListForPatient: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d active assignments, want 1", len(got))
	}
}
