package portal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockReads struct {
	appointments map[uuid.UUID][]UpcomingAppointment
	exercises    map[uuid.UUID][]HomeExercise
	invoices     map[uuid.UUID][]OpenInvoice
	paidTotals   map[uuid.UUID]float64

	failInvoices bool
}

func newMockReads() *mockReads {
	return &mockReads{
		appointments: map[uuid.UUID][]UpcomingAppointment{},
		exercises:    map[uuid.UUID][]HomeExercise{},
		invoices:     map[uuid.UUID][]OpenInvoice{},
		paidTotals:   map[uuid.UUID]float64{},
	}
}

func (m *mockReads) UpcomingAppointments(_ context.Context, patientID uuid.UUID, _ time.Time) ([]UpcomingAppointment, error) {
	return m.appointments[patientID], nil
}

func (m *mockReads) ActiveExercises(_ context.Context, patientID uuid.UUID) ([]HomeExercise, error) {
	return m.exercises[patientID], nil
}

func (m *mockReads) UnpaidInvoices(_ context.Context, patientID uuid.UUID) ([]OpenInvoice, error) {
	if m.failInvoices {
		return nil, fmt.Errorf("connection refused")
	}
	return m.invoices[patientID], nil
}

func (m *mockReads) PaidTotalSince(_ context.Context, patientID uuid.UUID, _ time.Time) (float64, error) {
	return m.paidTotals[patientID], nil
}

func TestDashboard_ScopedToPatient(t *testing.T) {
	reads := newMockReads()
	mine, theirs := uuid.New(), uuid.New()

	reads.invoices[mine] = []OpenInvoice{{ID: uuid.New(), TotalAmount: 60}, {ID: uuid.New(), TotalAmount: 40}}
	reads.invoices[theirs] = []OpenInvoice{{ID: uuid.New(), TotalAmount: 999}}
	reads.exercises[mine] = []HomeExercise{{ID: uuid.New(), ExerciseName: "Wall slide"}}
	reads.paidTotals[mine] = 120

	d, err := NewService(reads).Dashboard(context.Background(), mine)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.OutstandingBalance != 100 {
		t.Errorf("OutstandingBalance = %v, want 100", d.OutstandingBalance)
	}
	if d.PaidLast90Days != 120 {
		t.Errorf("PaidLast90Days = %v, want 120", d.PaidLast90Days)
	}
	if len(d.UnpaidInvoices) != 2 {
		t.Errorf("got %d unpaid invoices, want 2 (and never another patient's)", len(d.UnpaidInvoices))
	}
	if len(d.Exercises) != 1 {
		t.Errorf("got %d exercises, want 1", len(d.Exercises))
	}
}

func TestDashboard_AnyReadFailureIsFatal(t *testing.T) {
	reads := newMockReads()
	reads.failInvoices = true

	if _, err := NewService(reads).Dashboard(context.Background(), uuid.New()); err == nil {
		t.Fatal("a failed read must fail the whole dashboard")
	}
}

func TestDashboard_EmptyIsNotNil(t *testing.T) {
	d, err := NewService(newMockReads()).Dashboard(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.UpcomingAppointments == nil || d.Exercises == nil || d.UnpaidInvoices == nil {
		t.Error("empty collections should serialize as [], not null")
	}
}
