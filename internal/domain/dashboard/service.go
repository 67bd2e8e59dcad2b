package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Stats is the advanced-stats payload for the admin dashboard.
type Stats struct {
	RevenueToday          float64         `json:"revenue_today"`
	RevenueYesterday      float64         `json:"revenue_yesterday"`
	RevenueTrend          float64         `json:"revenue_trend"`
	AppointmentsToday     int             `json:"appointments_today"`
	AppointmentsYesterday int             `json:"appointments_yesterday"`
	AppointmentTrend      int             `json:"appointment_trend"`
	CancellationsToday    int             `json:"cancellations_today"`
	TotalPatients         int             `json:"total_patients"`
	TodaysSchedule        []ScheduleEntry `json:"todays_schedule"`
	AgeDistribution       map[string]int  `json:"age_distribution"`
	WeeklyAppointments    []DailyCount    `json:"weekly_appointments"`
}

type Service struct {
	reads Repository
	now   func() time.Time
}

func NewService(reads Repository) *Service {
	return &Service{reads: reads, now: time.Now}
}

// Advanced fans the underlying reads out concurrently and aggregates them.
// Any failed read fails the whole request; there are no partial results.
func (s *Service) Advanced(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	today := midnightUTC(now)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := today.AddDate(0, 0, -6)

	var (
		stats      Stats
		birthDates []time.Time
		weekly     map[string]int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.RevenueToday, err = s.reads.PaidRevenueBetween(ctx, today, tomorrow)
		return
	})
	g.Go(func() (err error) {
		stats.RevenueYesterday, err = s.reads.PaidRevenueBetween(ctx, yesterday, today)
		return
	})
	g.Go(func() (err error) {
		stats.AppointmentsToday, err = s.reads.AppointmentCountBetween(ctx, today, tomorrow)
		return
	})
	g.Go(func() (err error) {
		stats.AppointmentsYesterday, err = s.reads.AppointmentCountBetween(ctx, yesterday, today)
		return
	})
	g.Go(func() (err error) {
		stats.CancellationsToday, err = s.reads.CancellationCountBetween(ctx, today, tomorrow)
		return
	})
	g.Go(func() (err error) {
		stats.TodaysSchedule, err = s.reads.ScheduleBetween(ctx, today, tomorrow)
		return
	})
	g.Go(func() (err error) {
		stats.TotalPatients, err = s.reads.PatientCount(ctx)
		return
	})
	g.Go(func() (err error) {
		birthDates, err = s.reads.PatientBirthDates(ctx)
		return
	})
	g.Go(func() (err error) {
		weekly, err = s.reads.DailyAppointmentCounts(ctx, weekStart, tomorrow)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.RevenueTrend = TrendPercent(stats.RevenueToday, stats.RevenueYesterday)
	stats.AppointmentTrend = stats.AppointmentsToday - stats.AppointmentsYesterday
	stats.AgeDistribution = AgeDistribution(birthDates, now)
	stats.WeeklyAppointments = WeeklySeries(weekly, now)
	if stats.TodaysSchedule == nil {
		stats.TodaysSchedule = []ScheduleEntry{}
	}
	return &stats, nil
}
