package inventory

import (
	"context"

	"simrs/internal/domain/listing"
	"simrs/internal/domain/records"
	"simrs/pkg/logger"
)

// Service handles pharmacy inventory operations.
type Service struct {
	store *records.Store[Item]
}

// NewService creates an inventory service.
func NewService(store *records.Store[Item]) *Service {
	return &Service{store: store}
}

// SubmitOrder fulfils a purchase order draft: each referenced item gains
// the ordered quantity, its status resets to OK and its restock advisory
// is cleared. Items not referenced by the order are untouched. An empty
// draft is rejected without touching the collection.
//
// warn is non-nil when stock changed but could not be persisted.
func (s *Service) SubmitOrder(ctx context.Context, order Order) (items []Item, warn error, err error) {
	if err := order.Validate(); err != nil {
		return nil, nil, err
	}

	qtyByItem := make(map[string]int, len(order.Lines))
	for _, line := range order.Lines {
		qtyByItem[line.ItemID] += line.Qty
	}

	res, err := s.store.Mutate(ctx, "inventory.order", func(items []Item) ([]Item, error) {
		for i := range items {
			qty, ok := qtyByItem[items[i].ID]
			if !ok {
				continue
			}
			items[i].Stock += qty
			items[i].Status = StatusOK
			items[i].Advisory = ""
		}
		return items, nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info(ctx, "purchase order fulfilled",
		"lines", len(order.Lines),
		"total", order.Total.String(),
	)
	return res.Items, res.Warning, nil
}

// Snapshot returns the current stock.
func (s *Service) Snapshot(ctx context.Context) []Item {
	return s.store.Snapshot(ctx)
}

// List filters and paginates the stock view.
func (s *Service) List(ctx context.Context, q listing.Query, page, size int) ([]Item, int, error) {
	filtered, err := listing.Apply(s.store.Snapshot(ctx), q, predicates())
	if err != nil {
		return nil, 0, err
	}

	page = listing.ClampPage(page, listing.TotalPages(len(filtered), size))
	items, totalPages := listing.Paginate(filtered, page, size)
	return items, totalPages, nil
}

func predicates() listing.Predicates[Item] {
	return listing.Predicates[Item]{
		TextFields: func(it Item) []string { return []string{it.Name, it.ID} },
		StatusOf:   func(it Item) string { return string(it.Status) },
		CategoryOf: func(it Item) string { return string(it.Category) },
		Vars: func(it Item) map[string]any {
			return map[string]any{
				"id":          it.ID,
				"name":        it.Name,
				"category":    string(it.Category),
				"stock":       it.Stock,
				"unit":        it.Unit,
				"batchNumber": it.BatchNumber,
				"expiryDate":  it.ExpiryDate,
				"status":      string(it.Status),
				"advisory":    it.Advisory,
			}
		},
	}
}
