package billing

import "strings"

// ItemInput is a raw line item as submitted by the client. Quantity and
// UnitPrice are pointers so an omitted field can be told apart from an
// explicit zero.
type ItemInput struct {
	Description string   `json:"description"`
	Quantity    *int     `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
}

// CalcInput carries everything the totals depend on. CallerSubtotal and
// CallerTotal are client-supplied figures; zero means absent.
type CalcInput struct {
	Items          []ItemInput
	DiscountType   string
	DiscountValue  float64
	CallerSubtotal float64
	CallerTotal    float64
}

// CalcResult holds normalized items and the computed money columns.
// TotalOverridden is set when a positive caller total replaced the
// computed one.
type CalcResult struct {
	Items           []InvoiceItem
	Subtotal        float64
	DiscountAmount  float64
	TotalAmount     float64
	TotalOverridden bool
}

// Calculate normalizes line items and derives subtotal, discount and total.
//
// Normalization: an omitted quantity defaults to 1, an omitted unit price to
// 0; items with a blank description or an explicit non-positive quantity are
// dropped. The subtotal is the sum over normalized items, with the caller's
// subtotal as a fallback when that sum is zero. The discount is clamped to
// [0, subtotal] and the total never goes negative. A positive caller total
// wins over the computed one; callers should log when that happens.
// An empty input is not an error, it just yields zeros.
func Calculate(in CalcInput) CalcResult {
	var res CalcResult
	for _, raw := range in.Items {
		desc := strings.TrimSpace(raw.Description)
		if desc == "" {
			continue
		}
		qty := 1
		if raw.Quantity != nil {
			qty = *raw.Quantity
		}
		if qty <= 0 {
			continue
		}
		var price float64
		if raw.UnitPrice != nil {
			price = *raw.UnitPrice
		}
		res.Items = append(res.Items, InvoiceItem{
			Description: desc,
			Quantity:    qty,
			UnitPrice:   price,
			Amount:      float64(qty) * price,
		})
		res.Subtotal += float64(qty) * price
	}

	if res.Subtotal == 0 && in.CallerSubtotal > 0 {
		res.Subtotal = in.CallerSubtotal
	}

	switch in.DiscountType {
	case DiscountPercent:
		res.DiscountAmount = res.Subtotal * in.DiscountValue / 100
	case DiscountFlat:
		res.DiscountAmount = in.DiscountValue
	}
	if res.DiscountAmount < 0 {
		res.DiscountAmount = 0
	}
	if res.DiscountAmount > res.Subtotal {
		res.DiscountAmount = res.Subtotal
	}

	res.TotalAmount = res.Subtotal - res.DiscountAmount
	if res.TotalAmount < 0 {
		res.TotalAmount = 0
	}
	if in.CallerTotal > 0 {
		res.TotalOverridden = in.CallerTotal != res.TotalAmount
		res.TotalAmount = in.CallerTotal
	}
	return res
}
