package billing

import (
	"context"
	"time"

	"simrs/internal/core/apperror"
	"simrs/internal/domain/listing"
	"simrs/internal/domain/records"
	"simrs/pkg/logger"
)

// Service handles billing operations.
type Service struct {
	store *records.Store[Invoice]
}

// NewService creates a billing service.
func NewService(store *records.Store[Invoice]) *Service {
	return &Service{store: store}
}

// MarkPaid transitions an invoice to Paid. The transition is one-way:
// marking an already paid invoice is an idempotent success without a
// write-back. An unknown id is an error, unlike patient deletion.
//
// warn is non-nil when the ledger changed but could not be persisted.
func (s *Service) MarkPaid(ctx context.Context, id string) (inv Invoice, warn error, err error) {
	var paid Invoice
	res, err := s.store.Mutate(ctx, "billing.mark_paid", func(items []Invoice) ([]Invoice, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if items[i].Status == StatusPaid {
				paid = items[i]
				return nil, records.ErrNoChange
			}
			items[i].Status = StatusPaid
			items[i].PaidAt = time.Now().Format("2006-01-02")
			paid = items[i]
			return items, nil
		}
		return nil, apperror.NewNotFound("invoice", id)
	})
	if err != nil {
		return Invoice{}, nil, err
	}

	logger.Info(ctx, "invoice marked paid", "id", id)
	return paid, res.Warning, nil
}

// Get returns a single invoice by id.
func (s *Service) Get(ctx context.Context, id string) (Invoice, error) {
	for _, inv := range s.store.Snapshot(ctx) {
		if inv.ID == id {
			return inv, nil
		}
	}
	return Invoice{}, apperror.NewNotFound("invoice", id)
}

// Snapshot returns the current ledger.
func (s *Service) Snapshot(ctx context.Context) []Invoice {
	return s.store.Snapshot(ctx)
}

// Summary contains the derived billing aggregates. Values are recomputed
// from the full ledger on every call.
type Summary struct {
	TotalPaidRevenue   int64 `json:"totalPaidRevenue"`
	UnpaidCount        int   `json:"unpaidCount"`
	PendingClaimsTotal int64 `json:"pendingClaimsTotal"`
}

// Summarize computes the billing aggregates.
func (s *Service) Summarize(ctx context.Context) Summary {
	invoices := s.store.Snapshot(ctx)
	return Summary{
		TotalPaidRevenue:   TotalPaidRevenue(invoices),
		UnpaidCount:        UnpaidCount(invoices),
		PendingClaimsTotal: PendingClaimsTotal(invoices),
	}
}

// List filters and paginates the ledger view.
func (s *Service) List(ctx context.Context, q listing.Query, page, size int) ([]Invoice, int, error) {
	filtered, err := listing.Apply(s.store.Snapshot(ctx), q, predicates())
	if err != nil {
		return nil, 0, err
	}

	page = listing.ClampPage(page, listing.TotalPages(len(filtered), size))
	items, totalPages := listing.Paginate(filtered, page, size)
	return items, totalPages, nil
}

func predicates() listing.Predicates[Invoice] {
	return listing.Predicates[Invoice]{
		TextFields: func(inv Invoice) []string { return []string{inv.PatientName, inv.ID} },
		StatusOf:   func(inv Invoice) string { return string(inv.Status) },
		Vars: func(inv Invoice) map[string]any {
			return map[string]any{
				"id":          inv.ID,
				"patientName": inv.PatientName,
				"date":        inv.Date,
				"amount":      inv.Amount,
				"status":      string(inv.Status),
				"items":       inv.Items,
			}
		},
	}
}
