package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockReads struct {
	revenue      map[string]float64 // keyed by window start date
	appointments map[string]int
	cancelled    int
	schedule     []ScheduleEntry
	birthDates   []time.Time
	patients     int
	daily        map[string]int

	failPatientCount bool
}

func (m *mockReads) PaidRevenueBetween(_ context.Context, from, _ time.Time) (float64, error) {
	return m.revenue[from.Format("2006-01-02")], nil
}

func (m *mockReads) AppointmentCountBetween(_ context.Context, from, _ time.Time) (int, error) {
	return m.appointments[from.Format("2006-01-02")], nil
}

func (m *mockReads) CancellationCountBetween(_ context.Context, _, _ time.Time) (int, error) {
	return m.cancelled, nil
}

func (m *mockReads) ScheduleBetween(_ context.Context, _, _ time.Time) ([]ScheduleEntry, error) {
	return m.schedule, nil
}

func (m *mockReads) PatientBirthDates(_ context.Context) ([]time.Time, error) {
	return m.birthDates, nil
}

func (m *mockReads) PatientCount(_ context.Context) (int, error) {
	if m.failPatientCount {
		return 0, fmt.Errorf("connection refused")
	}
	return m.patients, nil
}

func (m *mockReads) DailyAppointmentCounts(_ context.Context, _, _ time.Time) (map[string]int, error) {
	return m.daily, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
}

func newTestService(reads *mockReads) *Service {
	svc := NewService(reads)
	svc.now = fixedNow
	return svc
}

func TestAdvanced(t *testing.T) {
	reads := &mockReads{
		revenue:      map[string]float64{"2026-03-10": 300, "2026-03-09": 150},
		appointments: map[string]int{"2026-03-10": 8, "2026-03-09": 5},
		cancelled:    1,
		schedule: []ScheduleEntry{
			{ID: uuid.New(), Status: "scheduled", PatientName: "Ada Lovelace", StaffName: "Dr. Chen"},
		},
		birthDates: []time.Time{time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)},
		patients:   42,
		daily:      map[string]int{"2026-03-10": 8},
	}

	stats, err := newTestService(reads).Advanced(context.Background())
	if err != nil {
		t.Fatalf("Advanced: %v", err)
	}
	if stats.RevenueToday != 300 || stats.RevenueYesterday != 150 {
		t.Errorf("revenue = %v/%v, want 300/150", stats.RevenueToday, stats.RevenueYesterday)
	}
	if stats.RevenueTrend != 100 {
		t.Errorf("RevenueTrend = %v, want 100", stats.RevenueTrend)
	}
	if stats.AppointmentTrend != 3 {
		t.Errorf("AppointmentTrend = %v, want 3", stats.AppointmentTrend)
	}
	if stats.TotalPatients != 42 {
		t.Errorf("TotalPatients = %d, want 42", stats.TotalPatients)
	}
	if stats.AgeDistribution[Bucket31to50] != 1 {
		t.Errorf("age distribution wrong: %v", stats.AgeDistribution)
	}
	if len(stats.WeeklyAppointments) != 7 {
		t.Errorf("weekly series has %d days, want 7", len(stats.WeeklyAppointments))
	}
	if len(stats.TodaysSchedule) != 1 {
		t.Errorf("schedule has %d entries, want 1", len(stats.TodaysSchedule))
	}
}

func TestAdvanced_AnyReadFailureIsFatal(t *testing.T) {
	reads := &mockReads{failPatientCount: true}

	if _, err := newTestService(reads).Advanced(context.Background()); err == nil {
		t.Fatal("a failed read must fail the whole aggregation")
	}
}

func TestAdvanced_EmptyDatabase(t *testing.T) {
	stats, err := newTestService(&mockReads{}).Advanced(context.Background())
	if err != nil {
		t.Fatalf("Advanced: %v", err)
	}
	if stats.RevenueTrend != 0 {
		t.Errorf("RevenueTrend = %v, want 0 for an empty day pair", stats.RevenueTrend)
	}
	if stats.TodaysSchedule == nil {
		t.Error("TodaysSchedule should be an empty slice, not nil")
	}
}
