package reports

import (
	"context"
	"sort"

	"simrs/internal/domain/billing"
	"simrs/internal/domain/inventory"
	"simrs/internal/domain/patient"
)

// Service builds dashboard reports.
type Service struct {
	patients  *patient.Service
	inventory *inventory.Service
	billing   *billing.Service
}

// NewService creates a reports service.
func NewService(p *patient.Service, inv *inventory.Service, b *billing.Service) *Service {
	return &Service{patients: p, inventory: inv, billing: b}
}

// Dashboard computes the full dashboard in one pass per collection.
func (s *Service) Dashboard(ctx context.Context) Dashboard {
	invoices := s.billing.Snapshot(ctx)
	items := s.inventory.Snapshot(ctx)
	patients := s.patients.Snapshot(ctx)

	inPatients := 0
	for _, p := range patients {
		if p.Status == patient.StatusInPatient {
			inPatients++
		}
	}

	return Dashboard{
		TotalPaidRevenue:   billing.TotalPaidRevenue(invoices),
		UnpaidCount:        billing.UnpaidCount(invoices),
		PendingClaimsTotal: billing.PendingClaimsTotal(invoices),
		CriticalOrLowCount: inventory.CriticalOrLowCount(items),
		PatientCount:       len(patients),
		InPatientCount:     inPatients,
		Revenue:            revenueSeries(invoices),
	}
}

// revenueSeries groups paid amounts by issue date, oldest first.
func revenueSeries(invoices []billing.Invoice) []RevenuePoint {
	byDate := make(map[string]*RevenuePoint)
	for _, inv := range invoices {
		if inv.Status != billing.StatusPaid {
			continue
		}
		point, ok := byDate[inv.Date]
		if !ok {
			point = &RevenuePoint{Date: inv.Date}
			byDate[inv.Date] = point
		}
		point.Amount += inv.Amount
		point.Invoices++
	}

	series := make([]RevenuePoint, 0, len(byDate))
	for _, point := range byDate {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}
