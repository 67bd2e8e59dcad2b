package billing

import (
	"context"
	"fmt"
	"strings"
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

const invoiceCols = `i.id, i.patient_id, i.appointment_id, i.status, i.subtotal,
	i.discount_type, i.discount_value, i.discount_amount, i.total_amount,
	i.issued_at, i.paid_at, i.created_at, i.updated_at,
	COALESCE(p.first_name || ' ' || p.last_name, '')`

const invoiceJoins = ` FROM invoices i LEFT JOIN patients p ON p.id = i.patient_id`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.PatientID, &inv.AppointmentID, &inv.Status, &inv.Subtotal,
		&inv.DiscountType, &inv.DiscountValue, &inv.DiscountAmount, &inv.TotalAmount,
		&inv.IssuedAt, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt, &inv.PatientName)
	if err != nil {
		return nil, err
	}
	inv.IssuedAt = inv.IssuedAt.UTC()
	return &inv, nil
}

func (r *repoPG) Create(ctx context.Context, inv *Invoice) error {
	inv.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO invoices (id, patient_id, appointment_id, status, subtotal,
			discount_type, discount_value, discount_amount, total_amount, issued_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		inv.ID, inv.PatientID, inv.AppointmentID, inv.Status, inv.Subtotal,
		inv.DiscountType, inv.DiscountValue, inv.DiscountAmount, inv.TotalAmount, inv.IssuedAt)
	return err
}

func (r *repoPG) loadItems(ctx context.Context, invoiceID uuid.UUID) ([]InvoiceItem, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, invoice_id, description, quantity, unit_price, amount
		FROM invoice_items WHERE invoice_id = $1 ORDER BY description`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []InvoiceItem
	for rows.Next() {
		var it InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.UnitPrice, &it.Amount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := scanInvoice(r.conn(ctx).QueryRow(ctx, `SELECT `+invoiceCols+invoiceJoins+` WHERE i.id = $1`, id))
	if err != nil {
		return nil, err
	}
	inv.Items, err = r.loadItems(ctx, id)
	return inv, err
}

func (r *repoPG) Update(ctx context.Context, inv *Invoice) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE invoices SET patient_id=$2, appointment_id=$3, status=$4, subtotal=$5,
			discount_type=$6, discount_value=$7, discount_amount=$8, total_amount=$9,
			issued_at=$10, paid_at=$11, updated_at=NOW()
		WHERE id = $1`,
		inv.ID, inv.PatientID, inv.AppointmentID, inv.Status, inv.Subtotal,
		inv.DiscountType, inv.DiscountValue, inv.DiscountAmount, inv.TotalAmount,
		inv.IssuedAt, inv.PaidAt)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.conn(ctx).Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, id); err != nil {
		return err
	}
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
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
	if f.PatientID != uuid.Nil {
		conds = append(conds, fmt.Sprintf("i.patient_id = $%d", n))
		args = append(args, f.PatientID)
		n++
	}
	if f.Status != "" {
		conds = append(conds, fmt.Sprintf("i.status = $%d", n))
		args = append(args, f.Status)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *repoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Invoice, int, error) {
	countWhere, countArgs := f.where(1)
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM invoices i`+countWhere, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	where, filterArgs := f.where(3)
	args := append([]interface{}{limit, offset}, filterArgs...)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+invoiceCols+invoiceJoins+where+` ORDER BY i.issued_at DESC LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, inv)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ReplaceItems(ctx context.Context, invoiceID uuid.UUID, items []InvoiceItem) error {
	if _, err := r.conn(ctx).Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return err
	}
	for i := range items {
		items[i].ID = uuid.New()
		items[i].InvoiceID = invoiceID
		if _, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO invoice_items (id, invoice_id, description, quantity, unit_price, amount)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			items[i].ID, invoiceID, items[i].Description, items[i].Quantity, items[i].UnitPrice, items[i].Amount); err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE invoices SET status = $2, paid_at = $3, updated_at = NOW() WHERE id = $1`,
		id, StatusPaid, paidAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
