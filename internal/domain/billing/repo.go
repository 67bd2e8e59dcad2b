package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ListFilter struct {
	PatientID uuid.UUID
	Status    string
}

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Invoice, int, error)

	// ReplaceItems rewrites the invoice's line items. Callers run it inside
	// the same transaction as the invoice write.
	ReplaceItems(ctx context.Context, invoiceID uuid.UUID, items []InvoiceItem) error
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error
}
