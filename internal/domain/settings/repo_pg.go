package settings

import (
	"context"

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

// The settings table holds exactly one row with id = 1.

func (r *repoPG) Get(ctx context.Context) (*Settings, error) {
	var s Settings
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT clinic_name, address, phone, email, currency, appointment_duration_minutes, updated_at
		FROM settings WHERE id = 1`).
		Scan(&s.ClinicName, &s.Address, &s.Phone, &s.Email, &s.Currency,
			&s.AppointmentDurationMinutes, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repoPG) Save(ctx context.Context, s *Settings) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE settings SET clinic_name=$1, address=$2, phone=$3, email=$4,
			currency=$5, appointment_duration_minutes=$6, updated_at=NOW()
		WHERE id = 1`,
		s.ClinicName, s.Address, s.Phone, s.Email, s.Currency, s.AppointmentDurationMinutes)
	return err
}
