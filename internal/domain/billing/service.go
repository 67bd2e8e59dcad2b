package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/platform/validate"
)

// TxRunner executes fn atomically. Production wiring passes db.WithTx bound
// to the pool.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// InvoiceInput is the write payload for create and update. Pointer fields
// distinguish "leave unchanged" from an explicit value on patch.
type InvoiceInput struct {
	PatientID     uuid.UUID   `json:"patient_id"`
	AppointmentID *uuid.UUID  `json:"appointment_id,omitempty"`
	Status        string      `json:"status,omitempty"`
	DiscountType  *string     `json:"discount_type,omitempty"`
	DiscountValue *float64    `json:"discount_value,omitempty"`
	Subtotal      float64     `json:"subtotal,omitempty"`
	TotalAmount   float64     `json:"total_amount,omitempty"`
	IssuedAt      *time.Time  `json:"issued_at,omitempty"`
	Items         []ItemInput `json:"items"`
}

type Service struct {
	invoices Repository
	inTx     TxRunner
	logger   zerolog.Logger
}

func NewService(invoices Repository, inTx TxRunner, logger zerolog.Logger) *Service {
	return &Service{invoices: invoices, inTx: inTx, logger: logger}
}

var validStatuses = map[string]bool{StatusUnpaid: true, StatusPaid: true}

var validDiscountTypes = map[string]bool{
	DiscountNone: true, DiscountPercent: true, DiscountFlat: true,
}

func (s *Service) compute(in *InvoiceInput, inv *Invoice) {
	res := Calculate(CalcInput{
		Items:          in.Items,
		DiscountType:   inv.DiscountType,
		DiscountValue:  inv.DiscountValue,
		CallerSubtotal: in.Subtotal,
		CallerTotal:    in.TotalAmount,
	})
	if res.TotalOverridden {
		s.logger.Warn().
			Str("patient_id", inv.PatientID.String()).
			Float64("computed", res.Subtotal-res.DiscountAmount).
			Float64("caller", res.TotalAmount).
			Msg("caller-supplied invoice total overrides computed total")
	}
	inv.Subtotal = res.Subtotal
	inv.DiscountAmount = res.DiscountAmount
	inv.TotalAmount = res.TotalAmount
	inv.Items = res.Items
}

func (s *Service) Create(ctx context.Context, in *InvoiceInput) (*Invoice, error) {
	if in.PatientID == uuid.Nil {
		return nil, validate.Errorf("patient_id is required")
	}
	inv := &Invoice{
		PatientID:     in.PatientID,
		AppointmentID: in.AppointmentID,
		Status:        StatusUnpaid,
		DiscountType:  DiscountNone,
		IssuedAt:      time.Now().UTC(),
	}
	if in.Status != "" {
		inv.Status = in.Status
	}
	if in.DiscountType != nil {
		inv.DiscountType = *in.DiscountType
	}
	if in.DiscountValue != nil {
		inv.DiscountValue = *in.DiscountValue
	}
	if in.IssuedAt != nil {
		inv.IssuedAt = in.IssuedAt.UTC()
	}
	if !validStatuses[inv.Status] {
		return nil, validate.Errorf("invalid status: %s", inv.Status)
	}
	if !validDiscountTypes[inv.DiscountType] {
		return nil, validate.Errorf("invalid discount_type: %s", inv.DiscountType)
	}
	s.compute(in, inv)

	err := s.inTx(ctx, func(ctx context.Context) error {
		if err := s.invoices.Create(ctx, inv); err != nil {
			return err
		}
		return s.invoices.ReplaceItems(ctx, inv.ID, inv.Items)
	})
	if err != nil {
		return nil, err
	}
	return s.invoices.GetByID(ctx, inv.ID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

// Update patches the invoice and rewrites its items atomically: when the
// reinsert fails, the invoice row update rolls back with it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in *InvoiceInput) (*Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.PatientID != uuid.Nil {
		inv.PatientID = in.PatientID
	}
	if in.AppointmentID != nil {
		inv.AppointmentID = in.AppointmentID
	}
	if in.Status != "" {
		if !validStatuses[in.Status] {
			return nil, validate.Errorf("invalid status: %s", in.Status)
		}
		inv.Status = in.Status
	}
	if in.DiscountType != nil {
		if !validDiscountTypes[*in.DiscountType] {
			return nil, validate.Errorf("invalid discount_type: %s", *in.DiscountType)
		}
		inv.DiscountType = *in.DiscountType
	}
	if in.DiscountValue != nil {
		inv.DiscountValue = *in.DiscountValue
	}
	if in.IssuedAt != nil {
		t := in.IssuedAt.UTC()
		inv.IssuedAt = t
	}
	if in.Items == nil {
		// keep the stored items, re-run the calculator over them
		for _, it := range inv.Items {
			qty, price := it.Quantity, it.UnitPrice
			in.Items = append(in.Items, ItemInput{Description: it.Description, Quantity: &qty, UnitPrice: &price})
		}
	}
	s.compute(in, inv)

	err = s.inTx(ctx, func(ctx context.Context) error {
		if err := s.invoices.Update(ctx, inv); err != nil {
			return err
		}
		return s.invoices.ReplaceItems(ctx, inv.ID, inv.Items)
	})
	if err != nil {
		return nil, err
	}
	return s.invoices.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.inTx(ctx, func(ctx context.Context) error {
		return s.invoices.Delete(ctx, id)
	})
}

func (s *Service) Pay(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	if err := s.invoices.MarkPaid(ctx, id, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.invoices.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Invoice, int, error) {
	return s.invoices.List(ctx, f, limit, offset)
}
