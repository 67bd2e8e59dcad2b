package notes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type mockRepo struct {
	items map[uuid.UUID]*ClinicalNote
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: map[uuid.UUID]*ClinicalNote{}}
}

func (m *mockRepo) Create(_ context.Context, n *ClinicalNote) error {
	n.ID = uuid.New()
	m.items[n.ID] = n
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*ClinicalNote, error) {
	n, ok := m.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return n, nil
}

func (m *mockRepo) Update(_ context.Context, n *ClinicalNote) error {
	if _, ok := m.items[n.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.items[n.ID] = n
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*ClinicalNote, int, error) {
	var out []*ClinicalNote
	for _, n := range m.items {
		if patientID != uuid.Nil && n.PatientID != patientID {
			continue
		}
		out = append(out, n)
	}
	return out, len(out), nil
}

func TestCreateNote(t *testing.T) {
	svc := NewService(newMockRepo())

	n := &ClinicalNote{PatientID: uuid.New(), Body: "Reports reduced pain, ROM improving."}
	if err := svc.Create(context.Background(), n); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestCreateNote_Validation(t *testing.T) {
	svc := NewService(newMockRepo())

	if err := svc.Create(context.Background(), &ClinicalNote{Body: "orphan"}); err == nil {
		t.Error("expected error for missing patient_id")
	}
	if err := svc.Create(context.Background(), &ClinicalNote{PatientID: uuid.New(), Body: "   "}); err == nil {
		t.Error("expected error for blank body")
	}
}

func TestListNotes_ByPatient(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	target := uuid.New()
	for i := 0; i < 3; i++ {
		pid := uuid.New()
		if i == 0 {
			pid = target
		}
		if err := svc.Create(context.Background(), &ClinicalNote{PatientID: pid, Body: "note"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	items, total, err := svc.List(context.Background(), target, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("got %d items (total %d), want 1", len(items), total)
	}
}
