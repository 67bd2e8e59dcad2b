package notes

import (
	"context"

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

const noteCols = `n.id, n.patient_id, n.author_staff_id, n.title, n.body,
	n.created_at, n.updated_at, COALESCE(s.name, '')`

const noteJoins = ` FROM clinical_notes n LEFT JOIN staff s ON s.id = n.author_staff_id`

func scanNote(row pgx.Row) (*ClinicalNote, error) {
	var n ClinicalNote
	err := row.Scan(&n.ID, &n.PatientID, &n.AuthorStaffID, &n.Title, &n.Body,
		&n.CreatedAt, &n.UpdatedAt, &n.AuthorName)
	return &n, err
}

func (r *repoPG) Create(ctx context.Context, n *ClinicalNote) error {
	n.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO clinical_notes (id, patient_id, author_staff_id, title, body)
		VALUES ($1,$2,$3,$4,$5)`,
		n.ID, n.PatientID, n.AuthorStaffID, n.Title, n.Body)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*ClinicalNote, error) {
	return scanNote(r.conn(ctx).QueryRow(ctx, `SELECT `+noteCols+noteJoins+` WHERE n.id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, n *ClinicalNote) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE clinical_notes SET title=$2, body=$3, updated_at=NOW() WHERE id = $1`,
		n.ID, n.Title, n.Body)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM clinical_notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ClinicalNote, int, error) {
	where := ``
	args := []interface{}{limit, offset}
	countArgs := []interface{}{}
	if patientID != uuid.Nil {
		where = ` WHERE n.patient_id = $3`
		args = append(args, patientID)
		countArgs = append(countArgs, patientID)
	}
	countWhere := ``
	if patientID != uuid.Nil {
		countWhere = ` WHERE n.patient_id = $1`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM clinical_notes n`+countWhere, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `SELECT `+noteCols+noteJoins+where+` ORDER BY n.created_at DESC LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ClinicalNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}
