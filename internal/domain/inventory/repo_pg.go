package inventory

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

const productCols = `id, name, sku, category, unit_price, stock_level, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.UnitPrice, &p.StockLevel,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Product) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO products (id, name, sku, category, unit_price, stock_level)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.Name, p.SKU, p.Category, p.UnitPrice, p.StockLevel)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return scanProduct(r.conn(ctx).QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Product) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE products SET name=$2, sku=$3, category=$4, unit_price=$5, stock_level=$6, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.SKU, p.Category, p.UnitPrice, p.StockLevel)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, query string, limit, offset int) ([]*Product, int, error) {
	where := ``
	args := []interface{}{limit, offset}
	if query != "" {
		where = ` WHERE name ILIKE '%' || $3 || '%' OR sku ILIKE '%' || $3 || '%' OR category ILIKE '%' || $3 || '%'`
		args = append(args, query)
	}

	var total int
	countArgs := args[2:]
	countWhere := where
	if query != "" {
		countWhere = ` WHERE name ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%'`
	}
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM products`+countWhere, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `SELECT `+productCols+` FROM products`+where+` ORDER BY name LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
