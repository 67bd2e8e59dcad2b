package exercise

import (
	"context"
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

const exerciseCols = `id, name, description, category, video_url, created_at, updated_at`

func scanExercise(row pgx.Row) (*Exercise, error) {
	var e Exercise
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Category, &e.VideoURL,
		&e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

func (r *repoPG) Create(ctx context.Context, e *Exercise) error {
	e.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO exercises (id, name, description, category, video_url)
		VALUES ($1,$2,$3,$4,$5)`,
		e.ID, e.Name, e.Description, e.Category, e.VideoURL)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Exercise, error) {
	return scanExercise(r.conn(ctx).QueryRow(ctx, `SELECT `+exerciseCols+` FROM exercises WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, e *Exercise) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE exercises SET name=$2, description=$3, category=$4, video_url=$5, updated_at=NOW()
		WHERE id = $1`,
		e.ID, e.Name, e.Description, e.Category, e.VideoURL)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, query string, limit, offset int) ([]*Exercise, int, error) {
	where := ``
	args := []interface{}{limit, offset}
	if query != "" {
		where = ` WHERE name ILIKE '%' || $3 || '%' OR category ILIKE '%' || $3 || '%'`
		args = append(args, query)
	}

	var total int
	countArgs := args[2:]
	countWhere := where
	if query != "" {
		countWhere = ` WHERE name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%'`
	}
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM exercises`+countWhere, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `SELECT `+exerciseCols+` FROM exercises`+where+` ORDER BY name LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}

// -- Assignments --

type assignmentRepoPG struct{ pool *pgxpool.Pool }

func NewAssignmentRepoPG(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepoPG{pool: pool}
}

func (r *assignmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const assignmentCols = `a.id, a.patient_id, a.exercise_id, a.assigned_at, a.sets, a.reps,
	a.frequency, a.completed_dates, a.active, e.name, e.video_url`

const assignmentJoins = ` FROM assigned_exercises a JOIN exercises e ON e.id = a.exercise_id`

func scanAssignment(row pgx.Row) (*AssignedExercise, error) {
	var a AssignedExercise
	err := row.Scan(&a.ID, &a.PatientID, &a.ExerciseID, &a.AssignedAt, &a.Sets, &a.Reps,
		&a.Frequency, &a.CompletedDates, &a.Active, &a.ExerciseName, &a.VideoURL)
	return &a, err
}

func (r *assignmentRepoPG) Assign(ctx context.Context, a *AssignedExercise) error {
	a.ID = uuid.New()
	if a.CompletedDates == nil {
		a.CompletedDates = []time.Time{}
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO assigned_exercises (id, patient_id, exercise_id, assigned_at, sets, reps, frequency, completed_dates, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.PatientID, a.ExerciseID, a.AssignedAt, a.Sets, a.Reps, a.Frequency, a.CompletedDates, a.Active)
	return err
}

func (r *assignmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*AssignedExercise, error) {
	return scanAssignment(r.conn(ctx).QueryRow(ctx, `SELECT `+assignmentCols+assignmentJoins+` WHERE a.id = $1`, id))
}

func (r *assignmentRepoPG) Update(ctx context.Context, a *AssignedExercise) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE assigned_exercises SET sets=$2, reps=$3, frequency=$4, completed_dates=$5, active=$6
		WHERE id = $1`,
		a.ID, a.Sets, a.Reps, a.Frequency, a.CompletedDates, a.Active)
	return err
}

func (r *assignmentRepoPG) ListForPatient(ctx context.Context, patientID uuid.UUID, activeOnly bool) ([]*AssignedExercise, error) {
	q := `SELECT ` + assignmentCols + assignmentJoins + ` WHERE a.patient_id = $1`
	if activeOnly {
		q += ` AND a.active`
	}
	q += ` ORDER BY a.assigned_at DESC`

	rows, err := r.conn(ctx).Query(ctx, q, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AssignedExercise
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
