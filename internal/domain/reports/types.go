// Package reports composes the dashboard view from the record stores.
package reports

// RevenuePoint is one day of the revenue series.
type RevenuePoint struct {
	Date     string `json:"date"`
	Amount   int64  `json:"amount"`
	Invoices int    `json:"invoices"`
}

// Dashboard carries the headline figures shown on the landing view.
// Everything is derived from snapshots on each request; nothing here is
// cached or stored.
type Dashboard struct {
	TotalPaidRevenue   int64          `json:"totalPaidRevenue"`
	UnpaidCount        int            `json:"unpaidCount"`
	PendingClaimsTotal int64          `json:"pendingClaimsTotal"`
	CriticalOrLowCount int            `json:"criticalOrLowCount"`
	PatientCount       int            `json:"patientCount"`
	InPatientCount     int            `json:"inPatientCount"`
	Revenue            []RevenuePoint `json:"revenue"`
}
