package portal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) UpcomingAppointments(ctx context.Context, patientID uuid.UUID, from time.Time) ([]UpcomingAppointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.start_time, a.end_time, a.status, COALESCE(s.name, ''), a.reason
		FROM appointments a
		LEFT JOIN staff s ON s.id = a.staff_id
		WHERE a.patient_id = $1 AND a.start_time >= $2 AND a.status = 'scheduled'
		ORDER BY a.start_time
		LIMIT 10`, patientID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []UpcomingAppointment
	for rows.Next() {
		var a UpcomingAppointment
		if err := rows.Scan(&a.ID, &a.StartTime, &a.EndTime, &a.Status, &a.StaffName, &a.Reason); err != nil {
			return nil, err
		}
		a.StartTime = a.StartTime.UTC()
		a.EndTime = a.EndTime.UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repoPG) ActiveExercises(ctx context.Context, patientID uuid.UUID) ([]HomeExercise, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, e.name, e.description, e.video_url, a.sets, a.reps, a.frequency, a.completed_dates
		FROM assigned_exercises a
		JOIN exercises e ON e.id = a.exercise_id
		WHERE a.patient_id = $1 AND a.active
		ORDER BY a.assigned_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []HomeExercise
	for rows.Next() {
		var h HomeExercise
		if err := rows.Scan(&h.ID, &h.ExerciseName, &h.Description, &h.VideoURL,
			&h.Sets, &h.Reps, &h.Frequency, &h.CompletedDates); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *repoPG) UnpaidInvoices(ctx context.Context, patientID uuid.UUID) ([]OpenInvoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, issued_at, total_amount FROM invoices
		WHERE patient_id = $1 AND status = 'unpaid'
		ORDER BY issued_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []OpenInvoice
	for rows.Next() {
		var inv OpenInvoice
		if err := rows.Scan(&inv.ID, &inv.IssuedAt, &inv.TotalAmount); err != nil {
			return nil, err
		}
		inv.IssuedAt = inv.IssuedAt.UTC()
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *repoPG) PaidTotalSince(ctx context.Context, patientID uuid.UUID, since time.Time) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) FROM invoices
		WHERE patient_id = $1 AND status = 'paid' AND paid_at >= $2`, patientID, since).Scan(&total)
	return total, err
}
