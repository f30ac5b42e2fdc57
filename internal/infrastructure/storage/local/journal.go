package local

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// CompressionAlgo specifies the compression algorithm used for a snapshot.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// JournalEntry is a recorded post-mutation snapshot of one slot.
// Snapshot is raw collection JSON; History always returns it
// decompressed, so the compressed form stays out of responses.
type JournalEntry struct {
	ID                 string          `db:"id" json:"id"`
	Slot               string          `db:"slot" json:"slot"`
	Op                 string          `db:"op" json:"op"`
	Snapshot           json.RawMessage `db:"snapshot" json:"snapshot"`
	SnapshotCompressed []byte          `db:"snapshot_compressed" json:"-"`
	CompressionAlgo    CompressionAlgo `db:"compression_algo" json:"compressionAlgo"`
	CreatedAt          time.Time       `db:"created_at" json:"createdAt"`
}

// Journal records full-collection snapshots after each mutation.
// Large snapshots are zstd-compressed.
type Journal struct {
	store             *Store
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int // bytes
}

// NewJournal creates a journal on the given store. threshold <= 0 uses
// the 10KB default.
func NewJournal(store *Store, threshold int) (*Journal, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	if threshold <= 0 {
		threshold = 10 * 1024
	}

	return &Journal{
		store:             store,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: threshold,
	}, nil
}

// Append records a snapshot of slot taken after op completed.
func (j *Journal) Append(ctx context.Context, slot, op string, snapshot []byte) error {
	entry := JournalEntry{
		ID:              uuid.New().String(),
		Slot:            slot,
		Op:              op,
		Snapshot:        snapshot,
		CompressionAlgo: CompressionNone,
		CreatedAt:       time.Now().UTC(),
	}

	if len(snapshot) > j.compressThreshold {
		entry.SnapshotCompressed = j.encoder.EncodeAll(snapshot, nil)
		entry.Snapshot = nil
		entry.CompressionAlgo = CompressionZstd
	}

	query, args, err := j.store.sb.
		Insert("sys_journal").
		Columns("id", "slot", "op", "snapshot", "snapshot_compressed", "compression_algo", "created_at").
		Values(entry.ID, entry.Slot, entry.Op, entry.Snapshot, entry.SnapshotCompressed, entry.CompressionAlgo, entry.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := j.store.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append journal: %w", err)
	}
	return nil
}

// History returns the most recent entries for a slot, newest first, with
// snapshots decompressed.
func (j *Journal) History(ctx context.Context, slot string, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := j.store.sb.
		Select("id", "slot", "op", "snapshot", "snapshot_compressed", "compression_algo", "created_at").
		From("sys_journal").
		Where(sq.Eq{"slot": slot}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	var entries []JournalEntry
	if err := sqlscan.Select(ctx, j.store.db, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}

	for i := range entries {
		e := &entries[i]
		if e.CompressionAlgo == CompressionZstd && len(e.SnapshotCompressed) > 0 {
			decompressed, err := j.decoder.DecodeAll(e.SnapshotCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress snapshot: %w", err)
			}
			e.Snapshot = decompressed
			e.SnapshotCompressed = nil
		}
	}

	return entries, nil
}
