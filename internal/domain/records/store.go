// Package records implements the collection stores behind the dashboard.
//
// Each collection (patients, inventory, invoices) is held fully in memory
// and mirrored to a durable slot on every mutation. The in-memory state is
// authoritative: a failed write-back degrades to a warning instead of
// rejecting the mutation.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"simrs/internal/core/apperror"
	"simrs/pkg/logger"
)

// ErrSlotNotFound is returned by SlotStore.GetSlot when the slot has never
// been written.
var ErrSlotNotFound = errors.New("slot not found")

// ErrNoChange can be returned by a mutation func to signal that the
// collection is already in the desired state. The mutation succeeds
// without a write-back.
var ErrNoChange = errors.New("no change")

// SlotStore persists whole-collection payloads keyed by slot name.
type SlotStore interface {
	GetSlot(ctx context.Context, kind string) ([]byte, error)
	PutSlot(ctx context.Context, kind string, payload []byte) error
}

// Journal records post-mutation snapshots for later inspection.
type Journal interface {
	Append(ctx context.Context, slot, op string, snapshot []byte) error
}

// Result carries the post-mutation snapshot and an optional warning.
// Warning is a PERSISTENCE_UNAVAILABLE AppError when the in-memory state
// changed but could not be written back.
type Result[T any] struct {
	Items   []T
	Warning error
}

// Store holds one collection and serializes mutations to it.
type Store[T any] struct {
	slot    string
	slots   SlotStore
	journal Journal
	tracer  trace.Tracer

	mu    sync.Mutex
	items []T
}

// Open loads the collection from its slot. A missing slot or a payload
// that fails to decode falls back to the seed dataset, which is then
// persisted best-effort.
func Open[T any](ctx context.Context, slots SlotStore, journal Journal, slot string, seed func() []T) *Store[T] {
	s := &Store[T]{
		slot:    slot,
		slots:   slots,
		journal: journal,
		tracer:  otel.Tracer("simrs/records"),
	}

	payload, err := slots.GetSlot(ctx, slot)
	if err == nil {
		var items []T
		if jsonErr := json.Unmarshal(payload, &items); jsonErr == nil {
			s.items = items
			return s
		} else {
			err = jsonErr
		}
	}

	if !errors.Is(err, ErrSlotNotFound) {
		logger.Warn(ctx, "slot unreadable, falling back to seed data",
			"slot", slot,
			"error", err,
		)
	}

	s.items = seed()
	if perr := s.persistLocked(ctx, "seed"); perr != nil {
		logger.Warn(ctx, "failed to persist seed data",
			"slot", slot,
			"error", perr,
		)
	}
	return s
}

// Snapshot returns a copy of the current collection.
func (s *Store[T]) Snapshot(ctx context.Context) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Len returns the current number of records.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Mutate applies fn to a working copy of the collection under the write
// lock. On success the replacement slice becomes current and is written
// back to the slot; a write-back failure is reported through
// Result.Warning, never as an error. fn errors leave the collection
// untouched.
func (s *Store[T]) Mutate(ctx context.Context, op string, fn func(items []T) ([]T, error)) (Result[T], error) {
	ctx, span := s.tracer.Start(ctx, "records.mutate", trace.WithAttributes(
		attribute.String("slot", s.slot),
		attribute.String("op", op),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(slices.Clone(s.items))
	if errors.Is(err, ErrNoChange) {
		return Result[T]{Items: slices.Clone(s.items)}, nil
	}
	if err != nil {
		span.RecordError(err)
		return Result[T]{}, err
	}

	s.items = next
	res := Result[T]{Items: slices.Clone(next)}

	if perr := s.persistLocked(ctx, op); perr != nil {
		span.RecordError(perr)
		logger.Warn(ctx, "write-back failed, in-memory state kept",
			"slot", s.slot,
			"op", op,
			"error", perr,
		)
		res.Warning = apperror.NewPersistenceUnavailable(perr)
	}
	return res, nil
}

// persistLocked writes the full collection to its slot and appends a
// journal snapshot. Caller must hold s.mu.
func (s *Store[T]) persistLocked(ctx context.Context, op string) error {
	payload, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	if err := s.slots.PutSlot(ctx, s.slot, payload); err != nil {
		return err
	}
	if s.journal != nil {
		if jerr := s.journal.Append(ctx, s.slot, op, payload); jerr != nil {
			// Slot write succeeded; a journal gap is log-worthy only.
			logger.Warn(ctx, "journal append failed",
				"slot", s.slot,
				"op", op,
				"error", jerr,
			)
		}
	}
	return nil
}
