package dto

import (
	"github.com/shopspring/decimal"

	"simrs/internal/domain/inventory"
)

// OrderLineRequest is one line of a purchase order submission.
type OrderLineRequest struct {
	ItemID   string          `json:"itemId"`
	ItemName string          `json:"itemName"`
	Qty      int             `json:"qty"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
}

// SubmitOrderRequest is a purchase order draft.
type SubmitOrderRequest struct {
	Lines []OrderLineRequest `json:"lines"`
}

// ToOrder converts the request to a domain order with totals computed.
func (r SubmitOrderRequest) ToOrder() inventory.Order {
	var order inventory.Order
	for _, line := range r.Lines {
		order.AddLine(inventory.OrderLine{
			ItemID:    line.ItemID,
			ItemName:  line.ItemName,
			Qty:       line.Qty,
			Unit:      line.Unit,
			UnitPrice: line.Price,
		})
	}
	return order
}

// OrderTotalsResponse reports the totals of the fulfilled order.
type OrderTotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	VAT      decimal.Decimal `json:"vat"`
	Total    decimal.Decimal `json:"total"`
}

// SubmitOrderResponse returns updated stock plus order totals.
type SubmitOrderResponse struct {
	Items   []inventory.Item    `json:"items"`
	Totals  OrderTotalsResponse `json:"totals"`
	Warning string              `json:"warning,omitempty"`
}
