package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// apptCols joins patient and staff names for display. COALESCE keeps the
// scan happy for appointments with no assigned staff.
const apptCols = `a.id, a.patient_id, a.staff_id, a.start_time, a.end_time, a.status,
	a.reason, a.notes, a.reminder_sent, a.created_at, a.updated_at,
	COALESCE(p.first_name || ' ' || p.last_name, ''), COALESCE(s.name, '')`

const apptJoins = ` FROM appointments a
	LEFT JOIN patients p ON p.id = a.patient_id
	LEFT JOIN staff s ON s.id = a.staff_id`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.StaffID, &a.StartTime, &a.EndTime, &a.Status,
		&a.Reason, &a.Notes, &a.ReminderSent, &a.CreatedAt, &a.UpdatedAt,
		&a.PatientName, &a.StaffName)
	if err != nil {
		return nil, err
	}
	a.StartTime = a.StartTime.UTC()
	a.EndTime = a.EndTime.UTC()
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointments (id, patient_id, staff_id, start_time, end_time, status, reason, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.PatientID, a.StaffID, a.StartTime, a.EndTime, a.Status, a.Reason, a.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx, `SELECT `+apptCols+apptJoins+` WHERE a.id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET patient_id=$2, staff_id=$3, start_time=$4, end_time=$5,
			status=$6, reason=$7, notes=$8, reminder_sent=$9, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.PatientID, a.StaffID, a.StartTime, a.EndTime, a.Status, a.Reason, a.Notes, a.ReminderSent)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (f ListFilter) where(startArg int) (string, []interface{}) {
	var conds []string
	var args []interface{}
	n := startArg
	add := func(cond string, v interface{}) {
		conds = append(conds, fmt.Sprintf(cond, n))
		args = append(args, v)
		n++
	}
	if f.PatientID != uuid.Nil {
		add("a.patient_id = $%d", f.PatientID)
	}
	if f.StaffID != uuid.Nil {
		add("a.staff_id = $%d", f.StaffID)
	}
	if f.Status != "" {
		add("a.status = $%d", f.Status)
	}
	if !f.From.IsZero() {
		add("a.start_time >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("a.start_time < $%d", f.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

func (r *repoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	countWhere, countArgs := f.where(1)
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointments a`+countWhere, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	where, args := f.where(3)
	args = append([]interface{}{limit, offset}, args...)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+apptCols+apptJoins+where+` ORDER BY a.start_time LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) DueReminders(ctx context.Context, from, to time.Time) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+apptJoins+`
		WHERE a.reminder_sent = false AND a.status = $1 AND a.start_time >= $2 AND a.start_time < $3
		ORDER BY a.start_time`, StatusScheduled, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE appointments SET reminder_sent = true, updated_at = NOW() WHERE id = $1`, id)
	return err
}
