package inventory

import (
	"github.com/shopspring/decimal"

	"simrs/internal/core/apperror"
)

// VATRate is the Indonesian PPN applied to purchase orders.
var VATRate = decimal.New(11, -2) // 11%

// Default draft line values used by the order form.
const (
	DefaultOrderQty = 50
)

// DefaultOrderPrice is the pre-filled unit price for a new draft line.
var DefaultOrderPrice = decimal.NewFromInt(15000)

// OrderLine is one position of a purchase order draft.
type OrderLine struct {
	ItemID    string          `json:"itemId"`
	ItemName  string          `json:"itemName"`
	Qty       int             `json:"qty"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"price"`
}

// Amount returns qty * unit price for the line.
func (l OrderLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Order is a purchase order draft for restocking inventory items.
type Order struct {
	Lines []OrderLine `json:"lines"`

	Subtotal decimal.Decimal `json:"subtotal"`
	VAT      decimal.Decimal `json:"vat"`
	Total    decimal.Decimal `json:"total"`
}

// AddLine appends a line and recalculates totals.
func (o *Order) AddLine(line OrderLine) {
	o.Lines = append(o.Lines, line)
	o.recalculateTotals()
}

// RemoveLine deletes the line at index i, ignoring out-of-range indexes.
func (o *Order) RemoveLine(i int) {
	if i < 0 || i >= len(o.Lines) {
		return
	}
	o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
	o.recalculateTotals()
}

// DraftLine builds a line for an item with the form's default qty and price.
func DraftLine(it Item) OrderLine {
	return OrderLine{
		ItemID:    it.ID,
		ItemName:  it.Name,
		Qty:       DefaultOrderQty,
		Unit:      it.Unit,
		UnitPrice: DefaultOrderPrice,
	}
}

// Empty reports whether the draft has no lines.
func (o *Order) Empty() bool {
	return len(o.Lines) == 0
}

// Validate checks the draft before submission.
func (o *Order) Validate() error {
	if o.Empty() {
		return apperror.NewEmptyOperation("purchase order has no lines")
	}
	for i, line := range o.Lines {
		if line.ItemID == "" {
			return apperror.NewValidation("order line has no item").WithDetail("line", i)
		}
		if line.Qty <= 0 {
			return apperror.NewValidation("order line qty must be positive").WithDetail("line", i)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("order line price must not be negative").WithDetail("line", i)
		}
	}
	return nil
}

// recalculateTotals recomputes subtotal, VAT and total from lines.
func (o *Order) recalculateTotals() {
	subtotal := decimal.Zero
	for _, line := range o.Lines {
		subtotal = subtotal.Add(line.Amount())
	}
	o.Subtotal = subtotal
	o.VAT = subtotal.Mul(VATRate).Round(2)
	o.Total = o.Subtotal.Add(o.VAT)
}
