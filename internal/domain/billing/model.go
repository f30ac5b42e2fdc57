// Package billing contains hospital invoices and revenue aggregation.
package billing

// Status of an invoice.
type Status string

const (
	StatusPaid             Status = "Paid"
	StatusPendingInsurance Status = "Pending Insurance"
	StatusOverdue          Status = "Overdue"
)

// Invoice is a hospital billing record.
// Identifiers follow the scheme TAG-YY-NNN. Amounts are whole rupiah.
//
// Invoices are created from seed data only; the single mutation exposed is
// the one-way transition to Paid.
type Invoice struct {
	ID          string `json:"id"`
	PatientName string `json:"patientName"`
	Date        string `json:"date"`
	Amount      int64  `json:"amount"`
	Status      Status `json:"status"`
	Items       int    `json:"items"`
	PaidAt      string `json:"paidAt,omitempty"`
}
