package records

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simrs/internal/core/apperror"
)

type doc struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func seedDocs() []doc {
	return []doc{{ID: "a", Value: 1}, {ID: "b", Value: 2}}
}

func TestOpen_SeedsMissingSlot(t *testing.T) {
	ctx := context.Background()
	slots := NewMemorySlots()

	store := Open(ctx, slots, nil, "docs", seedDocs)
	assert.Equal(t, seedDocs(), store.Snapshot(ctx))

	// The seed is written back so the next open reads it from the slot.
	payload, err := slots.GetSlot(ctx, "docs")
	require.NoError(t, err)

	var persisted []doc
	require.NoError(t, json.Unmarshal(payload, &persisted))
	assert.Equal(t, seedDocs(), persisted)
}

func TestOpen_LoadsExistingSlot(t *testing.T) {
	ctx := context.Background()
	slots := NewMemorySlots()
	stored := []doc{{ID: "z", Value: 99}}
	payload, err := json.Marshal(stored)
	require.NoError(t, err)
	slots.Seed("docs", payload)

	store := Open(ctx, slots, nil, "docs", seedDocs)
	assert.Equal(t, stored, store.Snapshot(ctx))
}

func TestOpen_MalformedPayloadFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	slots := NewMemorySlots()
	slots.Seed("docs", []byte(`{not json`))

	store := Open(ctx, slots, nil, "docs", seedDocs)
	assert.Equal(t, seedDocs(), store.Snapshot(ctx))

	// The broken payload is replaced with the seed.
	payload, err := slots.GetSlot(ctx, "docs")
	require.NoError(t, err)
	var persisted []doc
	assert.NoError(t, json.Unmarshal(payload, &persisted))
}

func TestMutate_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	slots := NewMemorySlots()

	store := Open(ctx, slots, nil, "docs", seedDocs)
	res, err := store.Mutate(ctx, "append", func(items []doc) ([]doc, error) {
		return append(items, doc{ID: "c", Value: 3}), nil
	})
	require.NoError(t, err)
	assert.NoError(t, res.Warning)
	assert.Len(t, res.Items, 3)

	reopened := Open(ctx, slots, nil, "docs", seedDocs)
	assert.Equal(t, res.Items, reopened.Snapshot(ctx))
}

func TestMutate_FnErrorLeavesCollectionUntouched(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, NewMemorySlots(), nil, "docs", seedDocs)

	boom := errors.New("boom")
	_, err := store.Mutate(ctx, "explode", func(items []doc) ([]doc, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, seedDocs(), store.Snapshot(ctx))
}

func TestMutate_WriteBackFailureWarnsAndKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	slots := NewMemorySlots()
	store := Open(ctx, slots, nil, "docs", seedDocs)

	slots.FailWrites = true
	slots.FailErr = errors.New("disk gone")

	res, err := store.Mutate(ctx, "append", func(items []doc) ([]doc, error) {
		return append(items, doc{ID: "c", Value: 3}), nil
	})
	require.NoError(t, err)
	require.Error(t, res.Warning)
	assert.True(t, apperror.IsPersistenceUnavailable(res.Warning))

	// The mutation still applied in memory.
	assert.Equal(t, 3, store.Len())
}

func TestMutate_NoChangeSkipsWriteBack(t *testing.T) {
	ctx := context.Background()
	slots := NewMemorySlots()
	store := Open(ctx, slots, nil, "docs", seedDocs)

	// A failing backend would surface a warning if a write happened.
	slots.FailWrites = true
	slots.FailErr = errors.New("disk gone")

	res, err := store.Mutate(ctx, "noop", func(items []doc) ([]doc, error) {
		return nil, ErrNoChange
	})
	require.NoError(t, err)
	assert.NoError(t, res.Warning)
	assert.Equal(t, seedDocs(), res.Items)
}

func TestMutate_AppendsJournalSnapshot(t *testing.T) {
	ctx := context.Background()
	journal := &captureJournal{}
	store := Open(ctx, NewMemorySlots(), journal, "docs", seedDocs)

	_, err := store.Mutate(ctx, "append", func(items []doc) ([]doc, error) {
		return append(items, doc{ID: "c", Value: 3}), nil
	})
	require.NoError(t, err)

	// One entry for the seed write, one for the mutation.
	require.Len(t, journal.entries, 2)
	assert.Equal(t, "seed", journal.entries[0].op)
	assert.Equal(t, "append", journal.entries[1].op)
	assert.Equal(t, "docs", journal.entries[1].slot)

	var snapshot []doc
	require.NoError(t, json.Unmarshal(journal.entries[1].payload, &snapshot))
	assert.Len(t, snapshot, 3)
}

func TestMutate_JournalFailureIsNotAWarning(t *testing.T) {
	ctx := context.Background()
	journal := &captureJournal{err: errors.New("journal gone")}
	store := Open(ctx, NewMemorySlots(), journal, "docs", seedDocs)

	res, err := store.Mutate(ctx, "append", func(items []doc) ([]doc, error) {
		return append(items, doc{ID: "c", Value: 3}), nil
	})
	require.NoError(t, err)
	assert.NoError(t, res.Warning)
}

func TestSnapshot_IsACopy(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, NewMemorySlots(), nil, "docs", seedDocs)

	snap := store.Snapshot(ctx)
	snap[0].Value = 1000

	assert.Equal(t, 1, store.Snapshot(ctx)[0].Value)
}

type journalEntry struct {
	slot, op string
	payload  []byte
}

type captureJournal struct {
	entries []journalEntry
	err     error
}

func (j *captureJournal) Append(_ context.Context, slot, op string, snapshot []byte) error {
	if j.err != nil {
		return j.err
	}
	j.entries = append(j.entries, journalEntry{slot: slot, op: op, payload: snapshot})
	return nil
}
