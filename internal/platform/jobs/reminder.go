package jobs

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/domain/scheduling"
)

// reminderWindow is how far ahead the reminder sweep looks.
const reminderWindow = 24 * time.Hour

// ReminderJob periodically finds appointments starting soon that have not
// been reminded yet, emits a reminder and marks them sent.
type ReminderJob struct {
	appointments scheduling.Repository
	logger       zerolog.Logger
	sent         prometheus.Counter
	cron         *cron.Cron
	now          func() time.Time
}

// NewReminderJob builds the job. sent may be nil when metrics are disabled.
func NewReminderJob(appointments scheduling.Repository, logger zerolog.Logger, sent prometheus.Counter) *ReminderJob {
	return &ReminderJob{
		appointments: appointments,
		logger:       logger,
		sent:         sent,
		now:          time.Now,
	}
}

// Start schedules the sweep with the given cron expression and launches the
// scheduler. Returns an error when the expression does not parse.
func (j *ReminderJob) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := j.Run(ctx); err != nil {
			j.logger.Error().Err(err).Msg("reminder sweep failed")
		}
	}); err != nil {
		return err
	}
	c.Start()
	j.cron = c
	j.logger.Info().Str("schedule", spec).Msg("reminder job started")
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (j *ReminderJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

// Run performs one sweep. Marking is per-appointment so one failure does not
// block the rest of the batch.
func (j *ReminderJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	due, err := j.appointments.DueReminders(ctx, now, now.Add(reminderWindow))
	if err != nil {
		return err
	}
	for _, appt := range due {
		j.logger.Info().
			Str("appointment_id", appt.ID.String()).
			Str("patient", appt.PatientName).
			Time("start_time", appt.StartTime).
			Msg("appointment reminder")
		if err := j.appointments.MarkReminderSent(ctx, appt.ID); err != nil {
			j.logger.Error().Err(err).Str("appointment_id", appt.ID.String()).Msg("mark reminder sent")
			continue
		}
		if j.sent != nil {
			j.sent.Inc()
		}
	}
	return nil
}
