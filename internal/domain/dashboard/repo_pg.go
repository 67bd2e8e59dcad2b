package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) PaidRevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) FROM invoices
		WHERE status = 'paid' AND paid_at >= $1 AND paid_at < $2`, from, to).Scan(&total)
	return total, err
}

func (r *repoPG) AppointmentCountBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM appointments
		WHERE start_time >= $1 AND start_time < $2`, from, to).Scan(&n)
	return n, err
}

func (r *repoPG) CancellationCountBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM appointments
		WHERE status = 'cancelled' AND start_time >= $1 AND start_time < $2`, from, to).Scan(&n)
	return n, err
}

func (r *repoPG) ScheduleBetween(ctx context.Context, from, to time.Time) ([]ScheduleEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.start_time, a.end_time, a.status,
			COALESCE(p.first_name || ' ' || p.last_name, ''), COALESCE(s.name, '')
		FROM appointments a
		LEFT JOIN patients p ON p.id = a.patient_id
		LEFT JOIN staff s ON s.id = a.staff_id
		WHERE a.start_time >= $1 AND a.start_time < $2
		ORDER BY a.start_time`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []ScheduleEntry
	for rows.Next() {
		var e ScheduleEntry
		if err := rows.Scan(&e.ID, &e.StartTime, &e.EndTime, &e.Status, &e.PatientName, &e.StaffName); err != nil {
			return nil, err
		}
		e.StartTime = e.StartTime.UTC()
		e.EndTime = e.EndTime.UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *repoPG) PatientBirthDates(ctx context.Context) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx, `SELECT birth_date FROM patients WHERE birth_date IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *repoPG) PatientCount(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&n)
	return n, err
}

func (r *repoPG) DailyAppointmentCounts(ctx context.Context, from, to time.Time) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(start_time AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM appointments
		WHERE start_time >= $1 AND start_time < $2
		GROUP BY day`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := map[string]int{}
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		counts[day] = n
	}
	return counts, rows.Err()
}
