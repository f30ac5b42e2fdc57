package billing

// Aggregates are pure single-pass functions over invoice snapshots.
// They never mutate and never cache; callers recompute per request.

// TotalPaidRevenue sums the amounts of paid invoices.
func TotalPaidRevenue(invoices []Invoice) int64 {
	var total int64
	for _, inv := range invoices {
		if inv.Status == StatusPaid {
			total += inv.Amount
		}
	}
	return total
}

// UnpaidCount counts invoices that are not yet paid.
func UnpaidCount(invoices []Invoice) int {
	n := 0
	for _, inv := range invoices {
		if inv.Status != StatusPaid {
			n++
		}
	}
	return n
}

// PendingClaimsTotal sums the amounts of invoices awaiting insurance.
func PendingClaimsTotal(invoices []Invoice) int64 {
	var total int64
	for _, inv := range invoices {
		if inv.Status == StatusPendingInsurance {
			total += inv.Amount
		}
	}
	return total
}
