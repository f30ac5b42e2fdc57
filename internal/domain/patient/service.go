package patient

import (
	"context"
	"strings"
	"time"

	"simrs/internal/core/apperror"
	"simrs/internal/domain/listing"
	"simrs/internal/domain/records"
	"simrs/pkg/logger"
	"simrs/pkg/numerator"
)

// Defaults applied to newly registered patients.
const (
	DefaultAge    = 30
	defaultStatus = StatusOutPatient
)

// IDSource allocates record identifiers.
type IDSource interface {
	GetNextNumber(ctx context.Context, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error)
}

// Service handles patient registry operations.
type Service struct {
	store   *records.Store[Patient]
	numbers IDSource
}

// NewService creates a patient service.
func NewService(store *records.Store[Patient], numbers IDSource) *Service {
	return &Service{store: store, numbers: numbers}
}

// Create registers a new patient. The record number comes from the RM
// sequence and is never reused, so deleting a patient cannot cause a
// later registration to collide with an existing identifier.
//
// warn is non-nil when the registry changed but could not be persisted.
func (s *Service) Create(ctx context.Context, in CreateInput) (p Patient, warn error, err error) {
	if err := in.Validate(); err != nil {
		return Patient{}, nil, err
	}

	id, err := s.numbers.GetNextNumber(ctx, numerator.PatientConfig(), nil, time.Now())
	if err != nil {
		return Patient{}, nil, apperror.NewInternal(err)
	}

	gender := in.Gender
	if gender == "" {
		gender = GenderMale
	}

	p = Patient{
		ID:        id,
		Name:      strings.TrimSpace(in.Name),
		Age:       DefaultAge,
		Gender:    gender,
		Status:    defaultStatus,
		Insurance: strings.TrimSpace(in.Insurance),
		LastVisit: time.Now().Format("2006-01-02"),
		Condition: DefaultCondition,
		Phone:     strings.TrimSpace(in.Phone),
	}

	// The registry is ordered newest first.
	res, err := s.store.Mutate(ctx, "patient.create", func(items []Patient) ([]Patient, error) {
		return append([]Patient{p}, items...), nil
	})
	if err != nil {
		return Patient{}, nil, err
	}

	logger.Info(ctx, "patient registered", "id", p.ID)
	return p, res.Warning, nil
}

// Update replaces the editable fields of an existing patient.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (p Patient, warn error, err error) {
	if err := in.Validate(); err != nil {
		return Patient{}, nil, err
	}

	var updated Patient
	res, err := s.store.Mutate(ctx, "patient.update", func(items []Patient) ([]Patient, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			items[i].Name = strings.TrimSpace(in.Name)
			items[i].Insurance = strings.TrimSpace(in.Insurance)
			if in.Gender != "" {
				items[i].Gender = in.Gender
			}
			updated = items[i]
			return items, nil
		}
		return nil, apperror.NewNotFound("patient", id)
	})
	if err != nil {
		return Patient{}, nil, err
	}
	return updated, res.Warning, nil
}

// Delete removes a patient from the registry. Deleting an unknown id is
// a silent no-op.
func (s *Service) Delete(ctx context.Context, id string) (warn error, err error) {
	res, err := s.store.Mutate(ctx, "patient.delete", func(items []Patient) ([]Patient, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, records.ErrNoChange
	})
	if err != nil {
		return nil, err
	}
	return res.Warning, nil
}

// Get returns a single patient by id.
func (s *Service) Get(ctx context.Context, id string) (Patient, error) {
	for _, p := range s.store.Snapshot(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return Patient{}, apperror.NewNotFound("patient", id)
}

// Snapshot returns the current registry.
func (s *Service) Snapshot(ctx context.Context) []Patient {
	return s.store.Snapshot(ctx)
}

// List filters and paginates the registry. The requested page is clamped
// into the filtered range, mirroring the dashboard's page-reset behavior
// when a filter shrinks the result set.
func (s *Service) List(ctx context.Context, q listing.Query, page, size int) ([]Patient, int, error) {
	filtered, err := listing.Apply(s.store.Snapshot(ctx), q, predicates())
	if err != nil {
		return nil, 0, err
	}

	page = listing.ClampPage(page, listing.TotalPages(len(filtered), size))
	items, totalPages := listing.Paginate(filtered, page, size)
	return items, totalPages, nil
}

func predicates() listing.Predicates[Patient] {
	return listing.Predicates[Patient]{
		TextFields: func(p Patient) []string { return []string{p.Name, p.ID} },
		StatusOf:   func(p Patient) string { return string(p.Status) },
		Vars: func(p Patient) map[string]any {
			return map[string]any{
				"id":        p.ID,
				"name":      p.Name,
				"age":       p.Age,
				"gender":    string(p.Gender),
				"status":    string(p.Status),
				"insurance": p.Insurance,
				"lastVisit": p.LastVisit,
				"condition": p.Condition,
			}
		},
	}
}
